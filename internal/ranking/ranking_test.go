package ranking

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/mangolang/mango-ir/internal/fqn"
	"github.com/mangolang/mango-ir/internal/model"
)

func sym(name string, refs int) model.Symbol {
	return model.Symbol{Name: fqn.MustNew(name), Kind: model.Function, File: "f.py", Refs: refs}
}

func sampleMap() *model.NameMap {
	return &model.NameMap{
		Repo: "repo",
		Symbols: []model.Symbol{
			sym("app.models.User", 5),
			sym("app.models.User.save", 3),
			sym("app.views.show", 1),
			sym("lib.util.slugify", 0),
		},
		Dependencies: []model.Dependency{
			{
				Source:  "app/views.py",
				Target:  "app/models.py",
				Symbols: []fqn.Fqn{fqn.MustNew("app.models.User"), fqn.MustNew("app.models.User.save")},
			},
			{
				Source:  "app/views.py",
				Target:  "lib/util.py",
				Symbols: []fqn.Fqn{fqn.MustNew("lib.util.slugify")},
			},
		},
	}
}

func symbolNames(nm *model.NameMap) []string {
	var out []string
	for _, s := range nm.Symbols {
		out = append(out, s.Name.String())
	}
	return out
}

func TestSelectSymbols(t *testing.T) {
	t.Parallel()

	nm := sampleMap()
	got := SelectSymbols(nm, 1)

	if diff := cmp.Diff([]string{"app.models.User"}, symbolNames(got)); diff != "" {
		t.Errorf("symbols mismatch (-want +got):\n%s", diff)
	}
	want := []model.Dependency{{
		Source:  "app/views.py",
		Target:  "app/models.py",
		Symbols: []fqn.Fqn{fqn.MustNew("app.models.User")},
	}}
	if diff := cmp.Diff(want, got.Dependencies); diff != "" {
		t.Errorf("deps mismatch (-want +got):\n%s", diff)
	}
	if got.Repo != "repo" {
		t.Errorf("repo = %q", got.Repo)
	}
	// The input is left alone.
	if len(nm.Dependencies[0].Symbols) != 2 {
		t.Error("input dependencies were modified")
	}
}

func TestSelectSymbolsNoLimit(t *testing.T) {
	t.Parallel()

	nm := sampleMap()
	if SelectSymbols(nm, 0) != nm || SelectSymbols(nm, 10) != nm {
		t.Error("expected the input map back when no trimming is needed")
	}
}

func TestFilterRoots(t *testing.T) {
	t.Parallel()

	got := FilterRoots(sampleMap(), []fqn.Fqn{fqn.MustNew("app.models"), fqn.MustNew("lib")})
	want := []string{"app.models.User", "app.models.User.save", "lib.util.slugify"}
	if diff := cmp.Diff(want, symbolNames(got)); diff != "" {
		t.Errorf("symbols mismatch (-want +got):\n%s", diff)
	}
	if len(got.Dependencies) != 2 {
		t.Errorf("expected both deps kept, got %+v", got.Dependencies)
	}

	// "app.model" is not a segment prefix of "app.models".
	if got := FilterRoots(sampleMap(), []fqn.Fqn{fqn.MustNew("app.model")}); len(got.Symbols) != 0 {
		t.Errorf("expected no symbols, got %v", symbolNames(got))
	}
}

func TestFilterByName(t *testing.T) {
	t.Parallel()

	got := FilterByName(sampleMap(), "USER")
	want := []string{"app.models.User", "app.models.User.save"}
	if diff := cmp.Diff(want, symbolNames(got)); diff != "" {
		t.Errorf("symbols mismatch (-want +got):\n%s", diff)
	}
	if len(got.Dependencies) != 1 || got.Dependencies[0].Target != "app/models.py" {
		t.Errorf("deps = %+v", got.Dependencies)
	}
}
