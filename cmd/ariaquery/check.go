package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/pinchtab/ariaquery/aria"
	"github.com/pinchtab/ariaquery/dom"
	"github.com/pinchtab/ariaquery/dom/htmltree"
	"github.com/pinchtab/ariaquery/internal/api/types"
	"github.com/pinchtab/ariaquery/query"
)

// Suite is a YAML file of accessibility assertions:
//
//	cases:
//	  - name: login form
//	    file: pages/login.html
//	    expect:
//	      - role: button
//	        name: Sign in
//	      - state: checked
//	        value: "true"
//	        count: 0
type Suite struct {
	Cases []Case `yaml:"cases"`
}

// Case loads one document from file (relative to the suite), url or inline
// html and checks every expectation against it.
type Case struct {
	Name   string        `yaml:"name"`
	File   string        `yaml:"file,omitempty"`
	URL    string        `yaml:"url,omitempty"`
	HTML   string        `yaml:"html,omitempty"`
	Expect []Expectation `yaml:"expect"`
}

// Expectation is a query and the number of matches it must have. Without
// a count at least one match is required.
type Expectation struct {
	types.QuerySpec `yaml:",inline"`
	Count           *int `yaml:"count,omitempty"`
}

// CaseResult is the outcome of one case. Err is set when the case could
// not run at all.
type CaseResult struct {
	Name     string
	Failures []string
	Err      error
}

func (r CaseResult) Passed() bool { return r.Err == nil && len(r.Failures) == 0 }

var errChecksFailed = errors.New("accessibility checks failed")

// ReadSuite parses a suite file.
func ReadSuite(path string) (*Suite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var s Suite
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(s.Cases) == 0 {
		return nil, fmt.Errorf("%s: no cases", path)
	}
	for i, c := range s.Cases {
		if c.Name == "" {
			s.Cases[i].Name = fmt.Sprintf("case %d", i+1)
		}
	}
	return &s, nil
}

type loadFunc func(ctx context.Context, c Case) (*htmltree.Document, error)

// runSuite runs the cases with at most parallel in flight. Results are in
// suite order.
func runSuite(ctx context.Context, s *Suite, parallel int, load loadFunc) []CaseResult {
	results := make([]CaseResult, len(s.Cases))
	if parallel < 1 {
		parallel = 1
	}
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(parallel)
	for i, c := range s.Cases {
		g.Go(func() error {
			results[i] = runCase(gCtx, c, load)
			return nil
		})
	}
	_ = g.Wait()
	return results
}

func runCase(ctx context.Context, c Case, load loadFunc) CaseResult {
	res := CaseResult{Name: c.Name}
	if err := ctx.Err(); err != nil {
		res.Err = err
		return res
	}
	doc, err := load(ctx, c)
	if err != nil {
		res.Err = err
		return res
	}
	for i, e := range c.Expect {
		if msg := e.check(doc.Root()); msg != "" {
			res.Failures = append(res.Failures, fmt.Sprintf("expect[%d]: %s", i, msg))
		}
	}
	return res
}

// check returns a failure message, or "" when the expectation holds.
func (e Expectation) check(root dom.Node) string {
	q, err := e.Query()
	if err != nil {
		return err.Error()
	}
	if _, err := query.Select(root, aria.Compile(q)); err != nil {
		return err.Error()
	}
	got := 0
	for range query.FindAll[dom.Node](root, q, e.Options()...) {
		got++
	}
	desc := aria.Compile(q)
	if e.Name != nil {
		desc += fmt.Sprintf(" named %q", *e.Name)
	}
	switch {
	case e.Count == nil && got == 0:
		return fmt.Sprintf("%s: no match", desc)
	case e.Count != nil && got != *e.Count:
		return fmt.Sprintf("%s: got %d matches, want %d", desc, got, *e.Count)
	}
	return ""
}

// caseLoader resolves case files against the suite directory.
func (a *app) caseLoader(dir string) loadFunc {
	return func(ctx context.Context, c Case) (*htmltree.Document, error) {
		switch {
		case c.HTML != "":
			return htmltree.ParseString(c.HTML)
		case c.URL != "":
			ctx, cancel := context.WithTimeout(ctx, a.cfg.NavigateTimeout+a.cfg.ActionTimeout)
			defer cancel()
			return a.capture(ctx, a.cfg, c.URL)
		case c.File != "":
			path := c.File
			if !filepath.IsAbs(path) {
				path = filepath.Join(dir, path)
			}
			f, err := os.Open(path)
			if err != nil {
				return nil, err
			}
			defer func() { _ = f.Close() }()
			return htmltree.Parse(f)
		}
		return nil, errors.New("case needs one of file, url or html")
	}
}
