package vernacular_test

import (
	"context"
	"errors"
	"testing"

	"github.com/gnames/gntree/pkg/vernacular"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAbbreviate(t *testing.T) {
	tests := []struct {
		msg   string
		input string
		res   string
	}{
		{"binomial", "Panthera leo", "P. leo"},
		{"trinomial", "Panthera leo leo", "P. l. leo"},
		{"already abbreviated", "E. coli", "E. coli"},
		{"uninomial", "Felidae", "Felidae"},
		{"uppercase epithet", "Panthera Leo", "Panthera Leo"},
		{"lowercase genus", "panthera leo", "panthera leo"},
		{"capitalized genus only", "PAnthera leo", "PAnthera leo"},
		{"four words", "Panthera leo leo leo", "Panthera leo leo leo"},
		{"composite", "Felidae → Panthera", "Felidae → Panthera"},
		{"hyphenated epithet", "Capsella bursa-pastoris", "C. bursa-pastoris"},
		{"hyphenated infraspecies", "Capsella bursa-pastoris bursa-pastoris",
			"C. b. bursa-pastoris"},
		{"dangling hyphen", "Capsella bursa-", "Capsella bursa-"},
		{"empty", "", ""},
	}

	for _, v := range tests {
		assert.Equal(t, v.res, vernacular.Abbreviate(v.input), v.msg)
	}
}

func TestParseVN(t *testing.T) {
	tests := []struct {
		msg     string
		content string
		res     string
		found   bool
	}{
		{
			msg:     "english in the middle",
			content: "== Vernacular names ==\n{{VN\n|de=Löwe\n|en=Lion\n|fr=Lion\n}}",
			res:     "Lion",
			found:   true,
		},
		{
			msg:     "english is last",
			content: "{{VN |de=Hauskatze |en= Domestic cat }}",
			res:     "Domestic cat",
			found:   true,
		},
		{
			msg:     "no template",
			content: "{{Taxonavigation}} |en=Lion",
			found:   false,
		},
		{
			msg:     "no english",
			content: "{{VN |de=Löwe |fr=Lion}}",
			found:   false,
		},
		{
			msg:     "english outside of template",
			content: "{{VN |de=Löwe}} {{Other |en=Lion}}",
			found:   false,
		},
		{
			msg:     "empty value",
			content: "{{VN |en= |de=Löwe}}",
			found:   false,
		},
		{
			msg:     "unterminated template",
			content: "{{VN |en=Lion",
			found:   false,
		},
		{
			msg:     "unterminated template with next field",
			content: "{{VN |en=Lion |de=Löwe",
			res:     "Lion",
			found:   true,
		},
		{
			msg:     "nested template before english",
			content: "{{VN |de={{lang|de|Löwe}} |en=Lion |fr=Lion}}",
			res:     "Lion",
			found:   true,
		},
		{
			msg:     "nested template in english",
			content: "{{VN |en={{lang|en|Lion}} |fr=Lion}}",
			res:     "{{lang|en|Lion}}",
			found:   true,
		},
		{
			msg:     "english field of nested template",
			content: "{{VN |de={{lang |en=Lion}} |fr=Lion}}",
			found:   false,
		},
		{
			msg:     "empty content",
			content: "",
			found:   false,
		},
	}

	for _, v := range tests {
		res, ok := vernacular.ParseVN(v.content)
		assert.Equal(t, v.found, ok, v.msg)
		assert.Equal(t, v.res, res, v.msg)
	}
}

type fakeFetcher struct {
	names map[string]string
	err   error
	calls map[string]int
}

func newFakeFetcher(names map[string]string) *fakeFetcher {
	return &fakeFetcher{names: names, calls: make(map[string]int)}
}

func (f *fakeFetcher) fetch(
	_ context.Context,
	name string,
) (string, bool, error) {
	f.calls[name]++
	if f.err != nil {
		return "", false, f.err
	}
	res, ok := f.names[name]
	return res, ok, nil
}

func TestMemoResolve(t *testing.T) {
	ctx := context.Background()
	f := newFakeFetcher(map[string]string{"Panthera leo": "Lion"})
	store := vernacular.NewMemStore()
	m := vernacular.Memoize(nil, f.fetch, store)

	res, ok := m.Resolve(ctx, "Panthera leo")
	assert.True(t, ok)
	assert.Equal(t, "Lion", res)

	res, ok = m.Resolve(ctx, "Panthera leo")
	assert.True(t, ok)
	assert.Equal(t, "Lion", res)
	assert.Equal(t, 1, f.calls["Panthera leo"])
}

func TestMemoCachesAbsentNames(t *testing.T) {
	ctx := context.Background()
	f := newFakeFetcher(nil)
	store := vernacular.NewMemStore()
	m := vernacular.Memoize(nil, f.fetch, store)

	for range 3 {
		res, ok := m.Resolve(ctx, "Felidae")
		assert.False(t, ok)
		assert.Empty(t, res)
	}
	assert.Equal(t, 1, f.calls["Felidae"])

	e, ok, err := store.Get("Felidae")
	require.NoError(t, err)
	assert.True(t, ok, "absent name is still stored")
	assert.False(t, e.Found)

	_, ok, err = store.Get("Canidae")
	require.NoError(t, err)
	assert.False(t, ok, "never looked up")
}

func TestMemoFetchError(t *testing.T) {
	ctx := context.Background()
	f := newFakeFetcher(map[string]string{"Panthera leo": "Lion"})
	f.err = errors.New("connection refused")
	store := vernacular.NewMemStore()
	m := vernacular.Memoize(nil, f.fetch, store)

	res, ok := m.Resolve(ctx, "Panthera leo")
	assert.False(t, ok)
	assert.Empty(t, res)

	f.err = nil
	_, ok = m.Resolve(ctx, "Panthera leo")
	assert.False(t, ok, "failure is cached")
	assert.Equal(t, 1, f.calls["Panthera leo"])
	assert.Equal(t, 1, store.Len())
}

func TestMemoKeyFn(t *testing.T) {
	ctx := context.Background()
	f := newFakeFetcher(map[string]string{"Panthera leo": "Lion"})
	store := vernacular.NewMemStore()
	m := vernacular.Memoize(
		func(s string) string { return "vn:" + s },
		f.fetch,
		store,
	)
	m.Resolve(ctx, "Panthera leo")

	e, ok, err := store.Get("vn:Panthera leo")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, vernacular.Entry{Name: "Lion", Found: true}, e)
}

func TestMemoCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	f := newFakeFetcher(map[string]string{"Panthera leo": "Lion"})
	f.err = context.Canceled
	store := vernacular.NewMemStore()
	m := vernacular.Memoize(nil, f.fetch, store)

	_, ok := m.Resolve(ctx, "Panthera leo")
	assert.False(t, ok)
	assert.Equal(t, 0, store.Len(), "interrupted lookup is not cached")

	f.err = nil
	res, ok := m.Resolve(context.Background(), "Panthera leo")
	assert.True(t, ok)
	assert.Equal(t, "Lion", res)
}
