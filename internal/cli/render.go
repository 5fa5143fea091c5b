package cli

import (
	"fmt"
	"io"
	"os"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/microcosm-cc/bluemonday"
	"github.com/spf13/cobra"

	"github.com/derickschaefer/richtext"
)

// newRenderCmd builds the render subcommand: read a document from a file
// (or stdin when the argument is "-" or absent), render it, and write the
// result to --output or stdout.
func newRenderCmd() *cobra.Command {
	var (
		format   string
		output   string
		sanitize bool
	)

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a rich text JSON document",
		Long: `Render reads a rich text document (JSON) and writes the rendered output.

Formats:
  html      rendered HTML (default)
  markdown  rendered HTML converted to Markdown
  text      plain text extraction

With --sanitize, the rendered HTML is filtered through a user-generated-
content sanitization policy before output (html and markdown formats).`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			prog := newProgress(logger)

			in, name, err := openInput(args)
			if err != nil {
				return err
			}
			defer in.Close()

			doc, err := richtext.Decode(in)
			if err != nil {
				return fmt.Errorf("decoding %s: %w", name, err)
			}
			logger.Debug("decoded document", "source", name, "nodes", len(doc.Content))

			var out string
			switch format {
			case "html", "markdown":
				html := richtext.RenderHTML(doc, nil)
				if sanitize {
					html = bluemonday.UGCPolicy().Sanitize(html)
				}
				if format == "markdown" {
					out, err = htmltomarkdown.ConvertString(html)
					if err != nil {
						return fmt.Errorf("converting to markdown: %w", err)
					}
				} else {
					out = html
				}
			case "text":
				out = doc.GetText()
			default:
				return fmt.Errorf("unknown format %q (want html, markdown, or text)", format)
			}

			if output != "" {
				if err := os.WriteFile(output, []byte(out+"\n"), 0o644); err != nil {
					return err
				}
				prog.done(fmt.Sprintf("Rendered %s to %s", name, output))
				return nil
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
			return err
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "html", "output format: html, markdown, or text")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write output to file instead of stdout")
	cmd.Flags().BoolVar(&sanitize, "sanitize", false, "sanitize rendered HTML with a UGC policy")

	return cmd
}

func openInput(args []string) (io.ReadCloser, string, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.NopCloser(os.Stdin), "stdin", nil
	}
	f, err := os.Open(args[0])
	if err != nil {
		return nil, "", err
	}
	return f, args[0], nil
}
