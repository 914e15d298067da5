package feed

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/lysyi3m/pod-comb/app/podcast"
)

// RenderEpisodes writes the episode list of result as a table, in result order.
func RenderEpisodes(w io.Writer, result *podcast.Result) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleRounded)
	tw.SetTitle(display(result.Meta["title"]))

	tw.AppendHeader(table.Row{"#", "Title", "Published", "Duration", "Order"})
	for i, episode := range result.Episodes {
		tw.AppendRow(table.Row{
			i + 1,
			display(episode["title"]),
			display(episode["pubDate"]),
			formatDuration(episode["duration"]),
			display(episode["order"]),
		})
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 2, WidthMax: 60},
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
	})
	tw.AppendFooter(table.Row{"", fmt.Sprintf("%d episodes", len(result.Episodes))})

	tw.Render()
}

func display(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case *podcast.Node:
		return val.Text
	case podcast.Nodes:
		if first := val.First(); first != nil {
			return first.Text
		}
		return ""
	default:
		return fmt.Sprint(val)
	}
}

func formatDuration(v any) string {
	seconds, ok := v.(int)
	if !ok {
		return display(v)
	}
	h, m, s := seconds/3600, seconds%3600/60, seconds%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
