package board

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/joestump/ideaboard/internal/client"
)

const timeLayout = "2006-01-02 15:04"

// RenderIdeas writes ideas as an aligned table with a trailing count.
func RenderIdeas(w io.Writer, ideas []client.Idea) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "UPVOTES\tCREATED\tID\tTEXT")
	for _, i := range ideas {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", i.Upvotes, formatCreated(i), i.ID, i.Text)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%d idea(s)\n", len(ideas))
	return err
}

// RenderIdea writes a single idea as key/value lines.
func RenderIdea(w io.Writer, i client.Idea) error {
	tw := tabwriter.NewWriter(w, 0, 0, 1, ' ', 0)
	fmt.Fprintf(tw, "ID:\t%s\n", i.ID)
	fmt.Fprintf(tw, "Text:\t%s\n", i.Text)
	fmt.Fprintf(tw, "Upvotes:\t%d\n", i.Upvotes)
	fmt.Fprintf(tw, "Created:\t%s\n", formatCreated(i))
	return tw.Flush()
}

// RenderNotices writes each notice on its own line.
func RenderNotices(w io.Writer, notices []Notice) {
	for _, n := range notices {
		prefix := "info"
		if n.Destructive {
			prefix = "error"
		}
		if n.Description != "" {
			fmt.Fprintf(w, "%s: %s: %s\n", prefix, n.Title, n.Description)
			continue
		}
		fmt.Fprintf(w, "%s: %s\n", prefix, n.Title)
	}
}

func formatCreated(i client.Idea) string {
	t := i.Created()
	if t.IsZero() {
		return "-"
	}
	return t.In(time.Local).Format(timeLayout)
}
