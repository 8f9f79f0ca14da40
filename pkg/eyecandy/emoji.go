/*
Copyright SUSE LLC.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

/*
Package eyecandy provides common methods to print messages with emojis
and colors, both of which can be turned off.
*/
package eyecandy

import (
	"fmt"
	"regexp"

	"github.com/fatih/color"
	"github.com/kyokomi/emoji/v2"

	"github.com/rancher-sandbox/respool/pkg/capmatch"
)

var emojiCode = regexp.MustCompile(`:[a-zA-Z0-9-_+]+?:`)

// Printer renders messages containing emoji codes such as :pizza:.
type Printer struct {
	NoEmojis bool
	NoColors bool
}

func (p Printer) Sprintf(format string, v ...interface{}) string {
	if p.NoEmojis {
		return fmt.Sprintf(removeEmojiFromString(format), v...)
	}
	return emoji.Sprintf(format, v...)
}

func (p Printer) Sprint(s string) string {
	if p.NoEmojis {
		return fmt.Sprint(removeEmojiFromString(s))
	}
	return emoji.Sprint(s)
}

// Verdict renders a match result, green for yes and red for no.
func (p Printer) Verdict(m capmatch.CapMatch) string {
	switch m {
	case capmatch.Yes:
		return p.paint(color.FgGreen, p.icon(":white_check_mark:")+m.String())
	case capmatch.No:
		return p.paint(color.FgRed, p.icon(":x:")+m.String())
	}
	return p.paint(color.FgYellow, p.icon(":grey_question:")+m.String())
}

// Problem renders a heading for an unresolved problem.
func (p Printer) Problem(description string) string {
	return p.paint(color.FgMagenta, p.icon(":warning:")+description)
}

// icon renders a single emoji code followed by a space, or nothing.
func (p Printer) icon(code string) string {
	if p.NoEmojis {
		return ""
	}
	return emoji.Sprint(code)
}

func (p Printer) paint(attr color.Attribute, s string) string {
	if p.NoColors {
		return s
	}
	c := color.New(attr)
	// color disables itself when not writing to a terminal
	c.EnableColor()
	return c.Sprint(s)
}

func removeEmojiFromString(s string) string {
	return emojiCode.ReplaceAllString(s, "")
}
