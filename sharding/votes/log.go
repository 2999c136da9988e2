package votes

import "github.com/sirupsen/logrus"

var log = logrus.WithField("prefix", "votes")
