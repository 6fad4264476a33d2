package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for REPL output.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to. *App satisfies
// it; tests provide a recording stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Reset(ctx context.Context) error
	Logout(ctx context.Context) error
	List(ctx context.Context, args []string) error
	Grades(ctx context.Context) error
	Add(ctx context.Context) error
	Update(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	Show(ctx context.Context, id string) error
	Export(ctx context.Context) error
	Card(ctx context.Context, id string) error
	Report(ctx context.Context) error
}

const (
	helpLoggedOut = "Available commands: register, login, reset, help, exit"
	helpLoggedIn  = "Available commands: list [search] [-g grade], grades, add, update <id>, delete <id>, show <id>, export, card <id>, report, logout, help, exit"
)

// runREPL reads one command per line from reader and dispatches it to a.
// It returns on end of input or on "exit"/"quit". Handler errors have
// already been reported to the user by the handlers and are dropped here.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("gradesys%s> ", prefixSpace(statusFn())))
		line, err := readLine(reader)
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := strings.ToLower(parts[0]), parts[1:]

		switch cmd {
		case "help", "?":
			if a.isLoggedIn() {
				printlnFn(helpLoggedIn)
			} else {
				printlnFn(helpLoggedOut)
			}
			continue
		case "exit", "quit":
			printlnFn("Bye!")
			return
		}

		if !a.isLoggedIn() {
			switch cmd {
			case "register":
				_ = a.Register(ctx)
			case "login":
				_ = a.Login(ctx)
			case "reset":
				_ = a.Reset(ctx)
			case "list", "l", "grades", "add", "update", "delete", "show", "export", "card", "report", "logout":
				printlnFn("Please log in first.")
			default:
				printlnFn("Unknown command:", cmd)
			}
			continue
		}

		switch cmd {
		case "list", "l":
			_ = a.List(ctx, args)
		case "grades":
			_ = a.Grades(ctx)
		case "add":
			_ = a.Add(ctx)
		case "update", "edit":
			if id, ok := needID(cmd, args); ok {
				_ = a.Update(ctx, id)
			}
		case "delete", "rm":
			if id, ok := needID(cmd, args); ok {
				_ = a.Delete(ctx, id)
			}
		case "show":
			if id, ok := needID(cmd, args); ok {
				_ = a.Show(ctx, id)
			}
		case "export":
			_ = a.Export(ctx)
		case "card":
			if id, ok := needID(cmd, args); ok {
				_ = a.Card(ctx, id)
			}
		case "report":
			_ = a.Report(ctx)
		case "logout":
			_ = a.Logout(ctx)
		case "register", "login", "reset":
			printlnFn("Already logged in. Use logout first.")
		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

func needID(cmd string, args []string) (string, bool) {
	if len(args) == 0 {
		printlnFn(fmt.Sprintf("Usage: %s <id>", cmd))
		return "", false
	}
	return strings.Join(args, " "), true
}

func prefixSpace(s string) string {
	if s == "" {
		return ""
	}
	return " " + s
}
