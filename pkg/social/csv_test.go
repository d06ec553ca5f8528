package social

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
)

func TestReadPosts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "posts.csv")

	data := "Caption,Likes\nFirst post,10\nSecond post,3\n"

	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	posts, err := ReadPosts(path)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := 2, len(posts.Columns); e != g {
		t.Fatalf("len(posts.Columns): expected %d, got %d", e, g)
	}

	if e, g := "Caption", posts.Columns[0]; e != g {
		t.Errorf("posts.Columns[0]: expected '%s', got '%s'", e, g)
	}

	if e, g := 2, len(posts.Records); e != g {
		t.Fatalf("len(posts.Records): expected %d, got %d", e, g)
	}

	if e, g := "Second post", posts.Records[1][0]; e != g {
		t.Errorf("posts.Records[1][0]: expected '%s', got '%s'", e, g)
	}
}

func TestReadPostsMissingFile(t *testing.T) {
	if _, err := ReadPosts(filepath.Join(t.TempDir(), "nope.csv")); err == nil {
		t.Error("expected an error, got nil")
	}
}

func TestPostsColumn(t *testing.T) {
	posts := &Posts{
		Columns: []string{"Caption", "Likes"},
	}

	idx, err := posts.Column("Likes")
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := 1, idx; e != g {
		t.Errorf("idx: expected %d, got %d", e, g)
	}

	if _, err := posts.Column("URL"); err == nil {
		t.Error("expected an error, got nil")
	}
}

func TestPostsEnsureColumn(t *testing.T) {
	posts := &Posts{
		Columns: []string{"Caption"},
		Records: [][]string{{"First"}, {"Second"}},
	}

	idx := posts.EnsureColumn("URL")

	if e, g := 1, idx; e != g {
		t.Fatalf("idx: expected %d, got %d", e, g)
	}

	for i, record := range posts.Records {
		if e, g := 2, len(record); e != g {
			t.Fatalf("len(posts.Records[%d]): expected %d, got %d", i, e, g)
		}

		if e, g := "", record[idx]; e != g {
			t.Errorf("posts.Records[%d][%d]: expected '%s', got '%s'", i, idx, e, g)
		}
	}

	// Ensuring an existing column clears its values.
	posts.Records[0][idx] = "https://example.com"

	if e, g := idx, posts.EnsureColumn("URL"); e != g {
		t.Fatalf("idx: expected %d, got %d", e, g)
	}

	if e, g := "", posts.Records[0][idx]; e != g {
		t.Errorf("posts.Records[0][%d]: expected '%s', got '%s'", idx, e, g)
	}
}

func TestPostsWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")

	posts := &Posts{
		Columns: []string{"Caption", "URL"},
		Records: [][]string{
			{"First post", "https://example.com/1"},
			{"Second, with a comma", "https://example.com/2"},
		},
	}

	if err := posts.WriteFile(path); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	read, err := ReadPosts(path)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := 2, len(read.Records); e != g {
		t.Fatalf("len(read.Records): expected %d, got %d", e, g)
	}

	if e, g := "Second, with a comma", read.Records[1][0]; e != g {
		t.Errorf("read.Records[1][0]: expected '%s', got '%s'", e, g)
	}
}
