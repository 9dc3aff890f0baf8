// Command thread-dump prints a thread as the API serves it, loading more
// posts until the whole thread (or the server's cap) is in view.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/itchan-dev/forum/shared/api"
	"github.com/itchan-dev/forum/shared/apiclient"
	"github.com/itchan-dev/forum/shared/logger"
)

func main() {
	var (
		baseURL string
		token   string
		top     bool
		timeout time.Duration
	)
	flag.StringVar(&baseURL, "api", "http://localhost:8080", "forum API base url")
	flag.StringVar(&token, "token", os.Getenv("FORUM_TOKEN"), "access token (optional)")
	flag.BoolVar(&top, "top", false, "rank posts by score")
	flag.DurationVar(&timeout, "timeout", 30*time.Second, "overall timeout")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: thread-dump [flags] <thread id>")
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	view, err := apiclient.New(baseURL, token).GetWholeThread(ctx, flag.Arg(0), top)
	if err != nil {
		logger.Log.Error("failed to load thread", "thread_id", flag.Arg(0), "error", err)
		os.Exit(1)
	}
	printThread(view)
}

func printThread(view api.ThreadViewResponse) {
	fmt.Printf("%s (%d of %d posts)\n", view.Thread.Title, view.Loaded, view.Total)
	for _, root := range view.Posts {
		printPost("", root.PostResponse)
		for _, reply := range root.Replies {
			printPost("    ", reply)
		}
	}
	if view.HasMore {
		fmt.Printf("... %d more posts not shown\n", view.Total-view.Loaded)
	}
}

func printPost(indent string, p api.PostResponse) {
	mark := ""
	if p.IsBestAnswer {
		mark = " [best answer]"
	}
	text := strings.ReplaceAll(p.Text, "\n", " ")
	fmt.Printf("%s[%+d] %s user %d%s: %s\n", indent, p.VoteScore, p.CreatedAt.Format(time.DateTime), p.AuthorId, mark, text)
}
