package project

import (
	"sort"
	"strings"

	"github.com/roach88/vsgen/internal/classify"
	"github.com/roach88/vsgen/internal/model"
	"github.com/roach88/vsgen/internal/paths"
)

// Builder renders project documents.
// A Builder holds no per-render state and can be reused across passes.
type Builder struct {
	classifier *classify.Classifier
	paths      *paths.Normalizer
	preferred  Style
}

// NewBuilder creates a builder that classifies with c and normalizes with n.
func NewBuilder(c *classify.Classifier, n *paths.Normalizer) *Builder {
	return &Builder{classifier: c, paths: n, preferred: DefaultPreferredStyle}
}

// WithPreferredStyle returns a copy of b that resolves StyleAutomatic to s.
func (b *Builder) WithPreferredStyle(s Style) *Builder {
	cp := *b
	cp.preferred = s
	return &cp
}

// Render returns the project document for in using style.
func (b *Builder) Render(style Style, in Input) string {
	doc := b.prepare(&in)
	strategy := strategyFor(style.Resolve(b.preferred))

	w := &writer{}
	strategy.header(w, doc)
	writeItems(w, doc, strategy)
	strategy.footer(w)
	return w.String()
}

type reference struct {
	name     string
	hintPath string
}

type projectReference struct {
	name string
	guid string
}

// document is the normalized, escaped-on-write view of an Input.
type document struct {
	name          string
	guid          string
	langVersion   string
	rootNamespace string
	outputPath    string
	defines       string
	unsafe        bool
	projectType   string
	host          model.Host

	compile     []string
	none        []string
	references  []reference
	projectRefs []projectReference

	analyzers      []string
	additional     []string
	ruleset        string
	analyzerConfig string
}

func (b *Builder) prepare(in *Input) *document {
	a := in.Assembly
	rsp := in.ResponseFiles

	doc := &document{
		name:          in.Name(),
		langVersion:   in.LangVersion,
		rootNamespace: a.Options.RootNamespace,
		outputPath:    b.paths.Separators(a.OutputPath),
		defines:       strings.Join(dedupe(append(append([]string{}, a.Defines...), rsp.Defines...), identity), ";"),
		unsafe:        a.Options.AllowUnsafeCode || rsp.Unsafe,
		projectType:   projectType(a),
		host:          in.Host,
	}
	doc.guid = in.guid(doc.name)
	if doc.langVersion == "" {
		doc.langVersion = "latest"
	}
	if doc.rootNamespace == "" {
		doc.rootNamespace = in.RootNamespace
	}

	var dllSources []string
	for _, src := range append(append([]string{}, a.SourceFiles...), in.ExtraItems...) {
		if classify.Extension(src) == "dll" {
			dllSources = append(dllSources, src)
			continue
		}
		switch b.classifier.Classify(src) {
		case classify.Compile:
			doc.compile = append(doc.compile, b.paths.Project(src))
		case classify.NonCompileTracked:
			doc.none = append(doc.none, b.paths.Project(src))
		}
	}
	doc.compile = sortedUnique(doc.compile)
	doc.none = sortedUnique(doc.none)

	var refs []reference
	for _, p := range dllSources {
		refs = append(refs, reference{name: paths.FileNameWithoutExtension(p), hintPath: b.paths.Project(p)})
	}
	for _, p := range a.CompiledAssemblyReferences {
		refs = append(refs, reference{name: paths.FileNameWithoutExtension(p), hintPath: b.paths.Project(p)})
	}
	for _, p := range rsp.FullPathReferences {
		refs = append(refs, reference{name: paths.FileNameWithoutExtension(p), hintPath: b.paths.Project(p)})
	}

	seenProject := make(map[string]bool)
	for _, ref := range a.AssemblyReferences {
		if ref == nil {
			continue
		}
		if in.internalized(ref) {
			refs = append(refs, reference{name: ref.Name, hintPath: b.paths.Project(ref.OutputPath)})
			continue
		}
		name := in.resolve(a.OutputPath, ref.Name)
		if seenProject[name] {
			continue
		}
		seenProject[name] = true
		doc.projectRefs = append(doc.projectRefs, projectReference{name: name, guid: in.guid(name)})
	}
	doc.references = dedupeReferences(refs)

	if !in.AnalyzersDisabled {
		doc.analyzers = b.absoluteUnique(in.Analyzers, rsp.Analyzers)
		doc.additional = b.absoluteUnique(in.AdditionalFiles, rsp.AdditionalFiles)
		if in.RulesetPath != "" {
			doc.ruleset = b.paths.Absolute(in.RulesetPath)
		}
		if in.AnalyzerConfigPath != "" {
			doc.analyzerConfig = b.paths.Absolute(in.AnalyzerConfigPath)
		}
	}
	return doc
}

// absoluteUnique concatenates lists in order, makes each path absolute and
// keeps the first of any case-insensitively equal paths.
func (b *Builder) absoluteUnique(lists ...[]string) []string {
	var all []string
	for _, l := range lists {
		for _, p := range l {
			if strings.TrimSpace(p) == "" {
				continue
			}
			all = append(all, b.paths.Absolute(p))
		}
	}
	return dedupe(all, paths.FoldKey)
}

func dedupeReferences(refs []reference) []reference {
	seen := make(map[string]bool, len(refs))
	out := refs[:0]
	for _, r := range refs {
		key := paths.FoldKey(r.hintPath)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, r)
	}
	return out
}

func identity(s string) string { return s }

// dedupe keeps the first element of each key, skipping empty strings.
func dedupe(items []string, key func(string) string) []string {
	seen := make(map[string]bool, len(items))
	var out []string
	for _, it := range items {
		if it == "" {
			continue
		}
		k := key(it)
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, it)
	}
	return out
}

func sortedUnique(items []string) []string {
	sort.Strings(items)
	out := items[:0]
	for _, it := range items {
		if len(out) > 0 && out[len(out)-1] == it {
			continue
		}
		out = append(out, it)
	}
	return out
}
