// Package tagger runs the external name tagger and returns its raw markup.
package tagger

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	"github.com/nauchpop/imena/pkg/imena/internalerr"
)

// Tagger turns plain text into a markup document of name annotations.
// Any failure is reported as an error wrapping internalerr.ErrTaggerFailure.
type Tagger interface {
	Tag(ctx context.Context, text string) ([]byte, error)
}

// Func adapts a plain function to the Tagger interface.
type Func func(ctx context.Context, text string) ([]byte, error)

// Tag implements Tagger.
func (f Func) Tag(ctx context.Context, text string) ([]byte, error) { return f(ctx, text) }

// Options configures a Subprocess tagger.
//
// Command arguments may contain the placeholders {dir}, {input}, {output}
// and {config}; they are replaced with paths inside the per-call work dir.
type Options struct {
	Command        []string
	BaseDir        string        // parent of per-call work dirs; os.TempDir() when empty
	ConfigTemplate string        // optional text/template rendered into the work dir
	ConfigName     string        // file name of the rendered config
	InputName      string        // file name the text is written to
	OutputName     string        // file name the tagger writes its markup to
	Stdout         bool          // read markup from stdout instead of OutputName
	Timeout        time.Duration // 0 means no limit beyond ctx
}

// Subprocess invokes an external tagger binary. Every call gets its own
// temporary directory so concurrent calls never share artifacts.
type Subprocess struct {
	opts Options
	tmpl *template.Template
}

// TemplateData is passed to the config template.
type TemplateData struct {
	Dir    string
	Input  string
	Output string
}

// NewSubprocess validates opts and parses the config template, if any.
func NewSubprocess(opts Options) (*Subprocess, error) {
	if len(opts.Command) == 0 {
		return nil, fmt.Errorf("%w: tagger command is empty", internalerr.ErrInvalidConfig)
	}
	if opts.ConfigName == "" {
		opts.ConfigName = "config.proto"
	}
	if opts.InputName == "" {
		opts.InputName = "input.txt"
	}
	if opts.OutputName == "" {
		opts.OutputName = "names.xml"
	}

	s := &Subprocess{opts: opts}
	if opts.ConfigTemplate != "" {
		tmpl, err := template.ParseFiles(opts.ConfigTemplate)
		if err != nil {
			return nil, fmt.Errorf("%w: tagger config template: %v", internalerr.ErrInvalidConfig, err)
		}
		s.tmpl = tmpl
	}
	return s, nil
}

// Tag implements Tagger.
func (s *Subprocess) Tag(ctx context.Context, text string) ([]byte, error) {
	dir, err := os.MkdirTemp(s.opts.BaseDir, "tagger-*")
	if err != nil {
		return nil, fmt.Errorf("%w: work dir: %v", internalerr.ErrTaggerFailure, err)
	}
	defer os.RemoveAll(dir)

	data := TemplateData{
		Dir:    dir,
		Input:  filepath.Join(dir, s.opts.InputName),
		Output: filepath.Join(dir, s.opts.OutputName),
	}
	if err := os.WriteFile(data.Input, []byte(text), 0o600); err != nil {
		return nil, fmt.Errorf("%w: write input: %v", internalerr.ErrTaggerFailure, err)
	}

	configPath := filepath.Join(dir, s.opts.ConfigName)
	if s.tmpl != nil {
		if err := s.renderConfig(configPath, data); err != nil {
			return nil, fmt.Errorf("%w: render config: %v", internalerr.ErrTaggerFailure, err)
		}
	}

	if s.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.Timeout)
		defer cancel()
	}

	r := strings.NewReplacer(
		"{dir}", dir,
		"{input}", data.Input,
		"{output}", data.Output,
		"{config}", configPath,
	)
	args := make([]string, len(s.opts.Command))
	for i, a := range s.opts.Command {
		args[i] = r.Replace(a)
	}

	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Dir = dir
	cmd.WaitDelay = time.Second
	cmd.Stdin = strings.NewReader(text)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("%w: %v", internalerr.ErrTaggerFailure, ctxErr)
		}
		if stderr.Len() > 0 {
			return nil, fmt.Errorf("%w: %v: %s", internalerr.ErrTaggerFailure, err, strings.TrimSpace(stderr.String()))
		}
		return nil, fmt.Errorf("%w: %v", internalerr.ErrTaggerFailure, err)
	}

	if s.opts.Stdout {
		return stdout.Bytes(), nil
	}

	out, err := os.ReadFile(data.Output)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: no output at %s", internalerr.ErrTaggerFailure, s.opts.OutputName)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read output: %v", internalerr.ErrTaggerFailure, err)
	}
	return out, nil
}

func (s *Subprocess) renderConfig(path string, data TemplateData) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := s.tmpl.Execute(f, data); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
