package headless

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/jeanpaul/assistant/internal/commands"
)

var (
	errorColor  = color.New(color.FgRed, color.Bold)
	noticeColor = color.New(color.FgYellow)
	echoColor   = color.New(color.FgHiBlack)
)

type Options struct {
	// Echo repeats each input line before its reply, for transcripts.
	Echo bool
}

// Run executes commands read line by line from in until exit, EOF or ctx is
// done. Replies go to out, errors and notices to errOut. Reaching EOF without
// an explicit exit still runs exit so autosave applies.
func Run(ctx context.Context, reg *commands.Registry, s *commands.Session, in io.Reader, out, errOut io.Writer, opts Options) error {
	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)

	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line := sc.Text()
		if opts.Echo {
			echoColor.Fprintln(out, commandPrompt+line)
		}
		reply := reg.Dispatch(ctx, s, line)
		write(reply, out, errOut)
		if reply.Quit {
			return nil
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	write(reg.Dispatch(ctx, s, "exit"), out, errOut)
	return nil
}

const commandPrompt = "Enter a command >>> "

func write(r commands.Reply, out, errOut io.Writer) {
	switch r.Status {
	case commands.StatusError:
		errorColor.Fprintln(errOut, r.Text)
	case commands.StatusNotice:
		noticeColor.Fprintln(errOut, r.Text)
	default:
		fmt.Fprintln(out, r.Text)
	}
}
