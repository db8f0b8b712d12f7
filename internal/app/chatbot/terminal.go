package chatbot

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"
	"golang.org/x/term"
)

// Terminal ввод с редактированием строки и историей на базе liner.
type Terminal struct {
	line        *liner.State
	historyFile string
}

// NewTerminal открывает терминал. С пустым historyFile история хранится только в памяти.
func NewTerminal(historyFile string) *Terminal {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	t := &Terminal{line: line, historyFile: historyFile}
	t.loadHistory()
	return t
}

func (t *Terminal) Prompt(prompt string) (string, error) {
	input, err := t.line.Prompt(prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		t.line.AppendHistory(input)
	}
	return input, nil
}

// Close сохраняет историю и возвращает терминал в обычный режим.
func (t *Terminal) Close() error {
	t.saveHistory()
	return t.line.Close()
}

func (t *Terminal) loadHistory() {
	if t.historyFile == "" {
		return
	}
	if f, err := os.Open(t.historyFile); err == nil {
		_, _ = t.line.ReadHistory(f)
		f.Close()
	}
}

func (t *Terminal) saveHistory() {
	if t.historyFile == "" {
		return
	}
	f, err := os.OpenFile(t.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return
	}
	defer f.Close()
	_, _ = t.line.WriteHistory(f)
}

// Input построчный ввод из произвольного потока, когда stdin не терминал
// (ввод из pipe или файла). Приглашение печатается в out.
type Input struct {
	scanner *bufio.Scanner
	out     io.Writer
}

func NewInput(r io.Reader, out io.Writer) *Input {
	return &Input{scanner: bufio.NewScanner(r), out: out}
}

func (i *Input) Prompt(prompt string) (string, error) {
	fmt.Fprint(i.out, prompt)
	if !i.scanner.Scan() {
		if err := i.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return i.scanner.Text(), nil
}

func (i *Input) Close() error { return nil }

// NewLineReader выбирает liner для терминала и Input для остальных потоков.
func NewLineReader(in io.Reader, out io.Writer, historyFile string) LineReader {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return NewTerminal(historyFile)
	}
	return NewInput(in, out)
}
