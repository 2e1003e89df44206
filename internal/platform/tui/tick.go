// Package tui provides the Bubble Tea integration for the arcade vault.
// It handles the terminal UI loop, input mapping, and game orchestration.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// FrameMsg triggers one game simulation tick. Seq identifies the frame loop
// that scheduled it; frames from a loop that has since been stopped or
// replaced are dropped.
type FrameMsg struct {
	Seq  int
	Time time.Time
}

// loopSeq numbers frame loops across every GameModel in the process, so a
// frame of a closed model can never match a model opened after it.
var loopSeq atomic.Int64

func nextLoopSeq() int {
	return int(loopSeq.Add(1))
}

// frameCmd schedules the next frame of loop seq at the given rate.
func frameCmd(tickRate, seq int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return FrameMsg{Seq: seq, Time: t}
	})
}
