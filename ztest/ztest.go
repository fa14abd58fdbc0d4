// Package ztest runs formulaic tests ("ztests") of the VCL formatter that
// are defined in YAML files.  Each test formats a VCL program and checks
// the result or the diagnostic it produces, e.g.,
//
//	vcl: |
//	  sub vcl_recv{set req.http.X="a";}
//
//	output: |
//	  sub vcl_recv {
//	    set req.http.X = "a";
//	  }
//
// A test expecting a failure gives the rendered diagnostic instead.
//
//	vcl: "set a 1;"
//
//	error: |
//	  SyntaxError: Expected assignment operator but got "1" at line 1, column 7:
//	  > 1 | set a 1;
//	      |       ^
//
// The format-flags field holds any flags accepted by cli/fmtflags, e.g.,
// "--print-width 40 --use-tabs", and instrument names the tag of a branch
// log pass to run before formatting.  An expected output must itself be
// formatted, so each test also checks that formatting it again leaves it
// unchanged and that every comment of the input survives in order.
//
// A package keeps its ztests in testdata/ztest and runs them from a test
// function that calls Run:
//
//	func TestZTest(t *testing.T) { ztest.Run(t, "testdata/ztest") }
//
// Every file ending in .yaml becomes a parallel subtest named after the
// file.  A non-empty skip field skips the test with that message, and a
// test with a tag runs only when the ZTEST_TAG environment variable
// matches it.
package ztest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/brimdata/vcl"
	"github.com/brimdata/vcl/cli/fmtflags"
	"github.com/brimdata/vcl/compiler/parser"
	"github.com/brimdata/vcl/compiler/plugin"
	"github.com/brimdata/vcl/compiler/plugin/branchlog"
	"github.com/goccy/go-yaml"
	yamlparser "github.com/goccy/go-yaml/parser"
	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/pflag"
)

// Bundle is one loaded test file.  Error is set instead of Test when the
// file could not be loaded.
type Bundle struct {
	TestName string
	FileName string
	Test     *ZTest
	Error    error
}

// Load reads every YAML test in dirname, sorted by file name.
func Load(dirname string) ([]Bundle, error) {
	paths, err := filepath.Glob(filepath.Join(dirname, "*.yaml"))
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(dirname); err != nil {
		return nil, err
	}
	bundles := make([]Bundle, 0, len(paths))
	for _, path := range paths {
		z, err := FromYAMLFile(path)
		bundles = append(bundles, Bundle{
			TestName: strings.TrimSuffix(filepath.Base(path), ".yaml"),
			FileName: path,
			Test:     z,
			Error:    err,
		})
	}
	return bundles, nil
}

// Run runs each test loaded from dirname as a parallel subtest.
func Run(t *testing.T, dirname string) {
	bundles, err := Load(dirname)
	if err != nil {
		t.Fatal(err)
	}
	for _, b := range bundles {
		t.Run(b.TestName, func(t *testing.T) {
			t.Parallel()
			if b.Error != nil {
				t.Fatalf("%s: %s", b.FileName, b.Error)
			}
			b.Test.Run(t, b.FileName)
		})
	}
}

// ZTest is the content of one test file.
type ZTest struct {
	Skip string `yaml:"skip,omitempty"`
	Tag  string `yaml:"tag,omitempty"`

	VCL         string `yaml:"vcl"`
	FormatFlags string `yaml:"format-flags,omitempty"`
	Instrument  string `yaml:"instrument,omitempty"`
	Output      string `yaml:"output,omitempty"`
	Error       string `yaml:"error,omitempty"`
}

func (z *ZTest) check() error {
	if z.VCL == "" {
		return errors.New("vcl field missing")
	}
	if z.Output != "" && z.Error != "" {
		return errors.New("only one of output or error may be present")
	}
	return nil
}

// FromYAMLFile decodes filename, rejecting unknown fields.
func FromYAMLFile(filename string) (*ZTest, error) {
	f, err := yamlparser.ParseFile(filename, 0)
	if err != nil {
		return nil, err
	}
	if len(f.Docs) != 1 {
		return nil, errors.New("file must contain one YAML document")
	}
	var z ZTest
	if err := yaml.NodeToValue(f.Docs[0].Body, &z, yaml.DisallowUnknownField()); err != nil {
		return nil, err
	}
	return &z, nil
}

func (z *ZTest) ShouldSkip() string {
	switch {
	case z.Skip != "":
		return z.Skip
	case z.Tag != "" && z.Tag != os.Getenv("ZTEST_TAG"):
		return fmt.Sprintf("tag %q does not match ZTEST_TAG=%q", z.Tag, os.Getenv("ZTEST_TAG"))
	}
	return ""
}

func (z *ZTest) Run(t *testing.T, filename string) {
	if msg := z.ShouldSkip(); msg != "" {
		t.Skip("skipping test:", msg)
	}
	if err := z.RunInternal(); err != nil {
		t.Fatalf("%s: %s", filename, err)
	}
}

func (z *ZTest) RunInternal() error {
	if err := z.check(); err != nil {
		return fmt.Errorf("invalid test: %w", err)
	}
	out, err := z.format(z.VCL, true)
	diffs := z.diffInternal(out, err)
	if diffs != nil || z.Output == "" {
		return diffs
	}
	again, err := z.format(z.Output, false)
	if err != nil {
		return fmt.Errorf("expected output does not parse: %w", err)
	}
	if again != z.Output {
		return diffErr("reformatted output", z.Output, again)
	}
	return checkComments(z.VCL, out)
}

// checkComments fails when formatting lost, added, or reordered a comment.
func checkComments(in, out string) error {
	expected, err := comments(in)
	if err != nil {
		return err
	}
	actual, err := comments(out)
	if err != nil {
		return err
	}
	if !slices.Equal(expected, actual) {
		return diffErr("comments", strings.Join(expected, "\n")+"\n", strings.Join(actual, "\n")+"\n")
	}
	return nil
}

func comments(text string) ([]string, error) {
	tokens, err := parser.Tokenize(text)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, tok := range tokens {
		if tok.Kind == parser.CommentToken {
			out = append(out, tok.Value)
		}
	}
	return out, nil
}

func (z *ZTest) format(text string, instrument bool) (string, error) {
	var flags fmtflags.Flags
	fs := pflag.NewFlagSet("ztest", pflag.ContinueOnError)
	flags.SetFlags(fs)
	if err := fs.Parse(strings.Fields(z.FormatFlags)); err != nil {
		return "", err
	}
	if flags.Config == "" {
		flags.Config = os.DevNull
	}
	opts, err := flags.Options()
	if err != nil {
		return "", err
	}
	var plugins []plugin.Func
	if instrument && z.Instrument != "" {
		plugins = append(plugins, branchlog.New(z.Instrument))
	}
	return vcl.Format(text, opts, plugins...)
}

func (z *ZTest) diffInternal(out string, err error) error {
	var outDiffErr, errDiffErr error
	if z.Output != out {
		outDiffErr = diffErr("output", z.Output, out)
	}
	var errStr string
	if err != nil {
		errStr = strings.TrimSuffix(err.Error(), "\n") + "\n"
	}
	if z.Error != errStr {
		errDiffErr = diffErr("error", z.Error, errStr)
	}
	return errors.Join(outDiffErr, errDiffErr)
}

func diffErr(name, expected, actual string) error {
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(expected),
		FromFile: "expected",
		B:        difflib.SplitLines(actual),
		ToFile:   "actual",
		Context:  5,
	})
	if err != nil {
		panic("ztest: " + err.Error())
	}
	return fmt.Errorf("expected and actual %s differ:\n%s", name, diff)
}
