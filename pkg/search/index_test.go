package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubItem is a minimal Searchable for index-level tests.
type stubItem struct {
	name    string
	display string
	url     string
}

func (s *stubItem) SearchName() string { return s.name }
func (s *stubItem) DisplayName() string {
	if s.display == "" {
		return s.name
	}
	return s.display
}
func (s *stubItem) SearchURL() string { return s.url }

// stubContainer builds its index from a fixed child list on every call.
type stubContainer struct {
	stubItem
	children   []*stubItem
	containers []Container
}

func (s *stubContainer) SearchIndex() *Index {
	b := NewBuilder()
	for _, child := range s.children {
		b.AddAliases(child)
	}
	for _, c := range s.containers {
		b.AddRecursive(c)
	}
	return b.Build()
}

func item(name string) *stubItem {
	return &stubItem{name: name, url: "job/" + name + "/"}
}

func itemWithDisplay(name, display string) *stubItem {
	it := item(name)
	it.display = display
	return it
}

func TestBuilderPreservesDeclarationOrder(t *testing.T) {
	a := itemWithDisplay("alpha", "Alpha Display")
	b := item("beta")

	idx := NewBuilder().AddAliases(a).AddAliases(b).Build()

	items := idx.Items()
	require.Len(t, items, 3)
	assert.Equal(t, "alpha", items[0].Name)
	assert.Equal(t, AliasName, items[0].Alias)
	assert.Equal(t, "Alpha Display", items[1].Name)
	assert.Equal(t, AliasDisplayName, items[1].Alias)
	assert.Equal(t, "beta", items[2].Name)
}

func TestBuilderIgnoresEmptyNames(t *testing.T) {
	idx := NewBuilder().
		Add(Item{Name: "", Target: item("x")}).
		AddName("real", item("real")).
		Build()

	require.Len(t, idx.Items(), 1)
	assert.Equal(t, "real", idx.Items()[0].Name)
}

func TestBuilderSkipsDisplayAliasWhenIdentical(t *testing.T) {
	idx := NewBuilder().AddAliases(item("same")).Build()

	require.Len(t, idx.Items(), 1)
	assert.Equal(t, AliasName, idx.Items()[0].Alias)
}

func TestFindExactMatch(t *testing.T) {
	target := item("build-web")
	idx := NewBuilder().AddAliases(item("other")).AddAliases(target).Build()

	got, ok := idx.Find("build-web")
	require.True(t, ok)
	assert.Same(t, target, got)
}

func TestFindNoMatch(t *testing.T) {
	idx := NewBuilder().AddAliases(item("build-web")).Build()

	tests := []struct {
		name  string
		query string
	}{
		{"missing name", "no-such-thing"},
		{"substring never resolves", "build"},
		{"empty query", ""},
		{"markup-like query", "<script>alert('script');</script>"},
		{"case mismatch", "Build-Web"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := idx.Find(tt.query)
			assert.False(t, ok)
			assert.Nil(t, got)
		})
	}
}

func TestFindFoldCaseInsensitive(t *testing.T) {
	target := item("build-web")
	idx := NewBuilder().AddAliases(target).Build()

	got, ok := idx.FindFold("Build-WEB", true)
	require.True(t, ok)
	assert.Same(t, target, got)
}

func TestFindByDisplayName(t *testing.T) {
	target := itemWithDisplay("job-a", "Nightly Deploy")
	idx := NewBuilder().AddAliases(target).Build()

	got, ok := idx.Find("Nightly Deploy")
	require.True(t, ok)
	assert.Same(t, target, got)
}

// A literal name must beat another object's display name even when the
// display-name owner is declared first.
func TestFindLiteralNamePrecedesDisplayName(t *testing.T) {
	decoy := itemWithDisplay("job-b", "foo")
	wanted := itemWithDisplay("foo", "something-else")

	idx := NewBuilder().AddAliases(decoy).AddAliases(wanted).Build()

	got, ok := idx.Find("foo")
	require.True(t, ok)
	assert.Same(t, wanted, got)
}

// Literal names have global priority: a nested literal name still beats a
// root-level display name.
func TestFindNestedLiteralNamePrecedesRootDisplayName(t *testing.T) {
	decoy := itemWithDisplay("job-b", "foo")
	nested := item("foo")
	folder := &stubContainer{stubItem: stubItem{name: "folder1", url: "job/folder1/"}}
	folder.children = []*stubItem{nested}

	idx := NewBuilder().
		AddAliases(decoy).
		AddAliases(&folder.stubItem).
		AddRecursive(folder).
		Build()

	got, ok := idx.Find("foo")
	require.True(t, ok)
	assert.Same(t, nested, got)
}

// A shallower literal name wins over a deeper one; declaration order breaks
// same-depth collisions.
func TestFindShallowerAndFirstDeclaredWins(t *testing.T) {
	shallow := item("dup")
	deep := item("dup")
	folder := &stubContainer{stubItem: stubItem{name: "nest", url: "job/nest/"}}
	folder.children = []*stubItem{deep}

	t.Run("shallower beats deeper", func(t *testing.T) {
		idx := NewBuilder().
			AddAliases(&folder.stubItem).
			AddRecursive(folder).
			AddAliases(shallow).
			Build()

		got, ok := idx.Find("dup")
		require.True(t, ok)
		assert.Same(t, shallow, got)
	})

	t.Run("first declared wins at equal depth", func(t *testing.T) {
		first := item("dup")
		second := item("dup")
		idx := NewBuilder().AddAliases(first).AddAliases(second).Build()

		got, ok := idx.Find("dup")
		require.True(t, ok)
		assert.Same(t, first, got)
	})
}

func TestFindDescendsArbitraryDepth(t *testing.T) {
	leaf := item("deep-job")
	inner := &stubContainer{stubItem: stubItem{name: "inner", url: "job/outer/job/inner/"}}
	inner.children = []*stubItem{leaf}
	outer := &stubContainer{stubItem: stubItem{name: "outer", url: "job/outer/"}}
	outer.containers = []Container{inner}

	idx := NewBuilder().AddAliases(&outer.stubItem).AddRecursive(outer).Build()

	got, ok := idx.Find("deep-job")
	require.True(t, ok)
	assert.Same(t, leaf, got)
}

func TestFindTerminatesOnContainerCycle(t *testing.T) {
	a := &stubContainer{stubItem: stubItem{name: "a", url: "job/a/"}}
	b := &stubContainer{stubItem: stubItem{name: "b", url: "job/b/"}}
	a.containers = []Container{b}
	b.containers = []Container{a}

	idx := NewBuilder().AddAliases(&a.stubItem).AddRecursive(a).Build()

	_, ok := idx.Find("no-such-thing")
	assert.False(t, ok)
}

func TestSuggestSubstringCaseInsensitive(t *testing.T) {
	idx := NewBuilder().
		AddAliases(item("Build-Web")).
		AddAliases(item("build-api")).
		AddAliases(item("deploy")).
		Build()

	got := idx.Suggest("BUILD")
	require.Len(t, got, 2)
	assert.Equal(t, "Build-Web", got[0].Name)
	assert.Equal(t, "build-api", got[1].Name)
}

// Both aliases of one object appear when both match, each labelled with the
// string that matched, referencing the same target.
func TestSuggestEmitsBothAliases(t *testing.T) {
	target := itemWithDisplay("project name", "display name")
	idx := NewBuilder().AddAliases(target).Build()

	got := idx.Suggest("name")
	require.Len(t, got, 2)
	assert.Equal(t, "project name", got[0].Name)
	assert.Equal(t, "display name", got[1].Name)
	assert.Same(t, target, got[0].Target)
	assert.True(t, got[0].SameTarget(got[1]))
}

// Two objects sharing a display name each contribute an entry; dedup is by
// target, not by matched string.
func TestSuggestSharedDisplayName(t *testing.T) {
	p1 := itemWithDisplay("projectName1", "displayNameFoo")
	p2 := itemWithDisplay("projectName2", "displayNameFoo")
	idx := NewBuilder().AddAliases(p1).AddAliases(p2).Build()

	got := idx.Suggest("displayNameFoo")
	require.Len(t, got, 2)
	assert.Same(t, p1, got[0].Target)
	assert.Same(t, p2, got[1].Target)
}

// The same (target, alias) pair must not be emitted twice even when the
// alias is reachable through more than one path.
func TestSuggestDeduplicatesRepeatedAlias(t *testing.T) {
	shared := item("shared-job")
	c1 := &stubContainer{stubItem: stubItem{name: "c1", url: "job/c1/"}}
	c1.children = []*stubItem{shared}
	c2 := &stubContainer{stubItem: stubItem{name: "c2", url: "job/c2/"}}
	c2.children = []*stubItem{shared}

	idx := NewBuilder().
		AddAliases(&c1.stubItem).
		AddRecursive(c1).
		AddAliases(&c2.stubItem).
		AddRecursive(c2).
		Build()

	got := idx.Suggest("shared")
	require.Len(t, got, 1)
	assert.Same(t, shared, got[0].Target)
}

func TestSuggestLimit(t *testing.T) {
	b := NewBuilder()
	for _, name := range []string{"job-1", "job-2", "job-3", "job-4"} {
		b.AddAliases(item(name))
	}
	idx := b.Build()

	assert.Len(t, idx.SuggestLimit("job", 2), 2)
	assert.Len(t, idx.SuggestLimit("job", 0), 4)
}

func TestSuggestEmptyResultIsValid(t *testing.T) {
	idx := NewBuilder().AddAliases(item("deploy")).Build()

	got := idx.Suggest("zzz")
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestSuggestTerminatesOnContainerCycle(t *testing.T) {
	a := &stubContainer{stubItem: stubItem{name: "loop-a", url: "job/loop-a/"}}
	b := &stubContainer{stubItem: stubItem{name: "loop-b", url: "job/loop-b/"}}
	a.containers = []Container{b}
	a.children = []*stubItem{item("inside")}
	b.containers = []Container{a}

	idx := NewBuilder().AddAliases(&a.stubItem).AddRecursive(a).Build()

	got := idx.Suggest("inside")
	require.Len(t, got, 1)
}
