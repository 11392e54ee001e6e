package main

import (
	"time"
)

type CompletedRun struct {
	Command  string
	BaseDir  string
	Affected int
	Error    string
	Started  time.Time
	Finished time.Time
}

func (cr CompletedRun) IsSuccess() bool {
	return cr.Error == ""
}
