package chart

import (
	"embed"
	"errors"
	"html/template"
	"io"
	"os"
	"strings"

	grob "github.com/MetalBlueberry/go-plotly/generated/v2.34.0/graph_objects"
	"github.com/tenthdistrict/activity/internal/contract"
)

//go:embed templates/figure.html.tmpl
var templateFS embed.FS

var documentTemplate = template.Must(template.ParseFS(templateFS, "templates/figure.html.tmpl"))

const chartDivID = "activity-chart"

// DocumentOptions controls the standalone HTML document around a figure.
type DocumentOptions struct {
	Title        string
	PlotlySrc    string // script URL; empty uses the CDN bundle matching the figure schema
	PlotlyJSFile string // local plotly.js bundle to inline
}

type documentData struct {
	Title     string
	PlotlySrc string
	InlineJS  template.JS
	DivID     string
	Figure    *grob.Fig
}

// WriteHTML renders fig as a self-contained HTML document at path, replacing
// any existing file. The destination directory must exist.
func WriteHTML(path string, fig *grob.Fig, opts DocumentOptions) error {
	file, err := contract.CreateOutputFile(path)
	if err != nil {
		return err
	}
	if err := RenderHTML(file, fig, opts); err != nil {
		_ = file.Close()
		var readErr *contract.ReadError
		if errors.As(err, &readErr) {
			return err
		}
		return &contract.WriteError{Path: path, Err: err}
	}
	if err := file.Close(); err != nil {
		return &contract.WriteError{Path: path, Err: err}
	}
	return nil
}

// RenderHTML writes the HTML document for fig to w.
func RenderHTML(w io.Writer, fig *grob.Fig, opts DocumentOptions) error {
	if fig == nil {
		return errors.New("nil figure")
	}
	data := documentData{
		Title:     opts.Title,
		PlotlySrc: opts.PlotlySrc,
		DivID:     chartDivID,
		Figure:    fig,
	}
	if opts.PlotlyJSFile != "" {
		js, err := os.ReadFile(opts.PlotlyJSFile)
		if err != nil {
			return &contract.ReadError{Path: opts.PlotlyJSFile, Err: err}
		}
		// Keep the bundle from closing the surrounding script element.
		data.InlineJS = template.JS(strings.ReplaceAll(string(js), "</script", `<\/script`))
	} else if data.PlotlySrc == "" {
		data.PlotlySrc = fig.Info().Cdn
	}
	return documentTemplate.Execute(w, data)
}
