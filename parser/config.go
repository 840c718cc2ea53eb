package parser

import "github.com/sirupsen/logrus"

var (
	tokenizerLog = logrus.WithField("component", "tokenizer")
	treeLog      = logrus.WithField("component", "tree")
)

// Config tunes a Parser. The zero value is ready to use.
type Config struct {
	// Debug traces every tokenizer state change and insertion mode switch.
	Debug bool
}
