package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/peterh/liner"
	"golang.org/x/term"
)

const historyFile = ".cellforth_history"

func runREPL() error {
	sess, err := newSession(os.Stdout)
	if err != nil {
		return err
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		sess.pushSourceFile("<stdin>", os.Stdin)
		return sess.run()
	}

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	if f, err := os.Open(historyFile); err == nil {
		line.ReadHistory(f)
		f.Close()
	}
	defer func() {
		if f, err := os.Create(historyFile); err == nil {
			line.WriteHistory(f)
			f.Close()
		}
	}()

	prompt := color.New(color.FgCyan).Sprint("cellforth> ")
	for {
		text, err := line.Prompt(prompt)
		if err == liner.ErrPromptAborted || err == io.EOF {
			fmt.Println()
			return nil
		}
		if err != nil {
			return err
		}
		if text == "" {
			continue
		}
		line.AppendHistory(text)

		sess.pushSource("<repl>", text+"\n")
		// Errors are already printed by session.run; the REPL just keeps
		// going so one bad line doesn't end the session.
		sess.run()
	}
}
