package ui

import "github.com/ThanathonTH/godspeed-downloader/internal/progress"

type jobUpdateMsg struct {
	U progress.Update
}

type jobLogMsg struct {
	L progress.Log
}

type jobResultMsg struct {
	R progress.Result
}

type startMsg struct{}

type allDoneMsg struct{}
