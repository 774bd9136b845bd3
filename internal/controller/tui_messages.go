package controller

// Message types.
type checkStartedMsg struct {
	total int
}

type checkResultMsg struct {
	check FileCheck
}

type checkDoneMsg struct{}
