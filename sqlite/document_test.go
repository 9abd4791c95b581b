package sqlite_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/fwojciec/libdoc"
	"github.com/fwojciec/libdoc/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentService_UpsertDocument(t *testing.T) {
	t.Parallel()

	t.Run("stores document and index entry", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		libID := createTestLibrary(t, db, "react")

		doc := upsertTestDocument(t, db, libID, "hooks.md", "Hooks", "Hooks let you use state.")

		assert.NotZero(t, doc.ID)
		assert.NotEmpty(t, doc.ContentHash)
		assert.False(t, doc.IndexedAt.IsZero())

		report := requireIndexConsistent(t, db)
		assert.Equal(t, 1, report.Documents)
		assert.Equal(t, 1, report.IndexEntries)
	})

	t.Run("upserting the same path twice keeps one document", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		ctx := context.Background()
		libID := createTestLibrary(t, db, "react")

		upsertTestDocument(t, db, libID, "hooks.md", "Hooks", "first version")
		second := upsertTestDocument(t, db, libID, "hooks.md", "Hooks", "second version")

		report := requireIndexConsistent(t, db)
		assert.Equal(t, 1, report.Documents)
		assert.Equal(t, 1, report.IndexEntries)

		lib, err := sqlite.NewLibraryService(db).FindLibraryByName(ctx, "react")
		require.NoError(t, err)
		assert.Equal(t, 1, lib.DocCount)

		found, err := sqlite.NewDocumentService(db).FindDocumentByPath(ctx, "react", "hooks.md")
		require.NoError(t, err)
		assert.Equal(t, second.ID, found.ID)
		assert.Equal(t, "second version", found.Content)

		results, err := sqlite.NewSearchService(db).Search(ctx, "first", libdoc.SearchOptions{})
		require.NoError(t, err)
		assert.Empty(t, results)
	})

	t.Run("same path in different libraries is stored twice", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		reactID := createTestLibrary(t, db, "react")
		vueID := createTestLibrary(t, db, "vue")

		upsertTestDocument(t, db, reactID, "index.md", "Index", "react docs")
		upsertTestDocument(t, db, vueID, "index.md", "Index", "vue docs")

		report := requireIndexConsistent(t, db)
		assert.Equal(t, 2, report.Documents)
	})

	t.Run("content hash changes with content", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		libID := createTestLibrary(t, db, "react")

		a := upsertTestDocument(t, db, libID, "a.md", "A", "same")
		b := upsertTestDocument(t, db, libID, "b.md", "B", "same")
		c := upsertTestDocument(t, db, libID, "c.md", "C", "different")

		assert.Equal(t, a.ContentHash, b.ContentHash)
		assert.NotEqual(t, a.ContentHash, c.ContentHash)
	})

	t.Run("returns EINVALID for blank content and changes nothing", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		libID := createTestLibrary(t, db, "react")
		upsertTestDocument(t, db, libID, "hooks.md", "Hooks", "original")

		err := sqlite.NewDocumentService(db).UpsertDocument(context.Background(), &libdoc.Document{
			LibraryID: libID,
			Path:      "hooks.md",
			Content:   " \n\t ",
		})
		require.Error(t, err)
		assert.Equal(t, libdoc.EINVALID, libdoc.ErrorCode(err))

		found, err := sqlite.NewDocumentService(db).FindDocumentByPath(context.Background(), "react", "hooks.md")
		require.NoError(t, err)
		assert.Equal(t, "original", found.Content)
	})

	t.Run("returns EINVALID for unknown library and changes nothing", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)

		err := sqlite.NewDocumentService(db).UpsertDocument(context.Background(), &libdoc.Document{
			LibraryID: 42,
			Path:      "hooks.md",
			Content:   "content",
		})
		require.Error(t, err)
		assert.Equal(t, libdoc.EINVALID, libdoc.ErrorCode(err))

		report := requireIndexConsistent(t, db)
		assert.Equal(t, 0, report.Documents)
	})

	t.Run("returns error for canceled context and changes nothing", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		libID := createTestLibrary(t, db, "react")

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := sqlite.NewDocumentService(db).UpsertDocument(ctx, &libdoc.Document{
			LibraryID: libID,
			Path:      "hooks.md",
			Content:   "content",
		})
		require.Error(t, err)

		report := requireIndexConsistent(t, db)
		assert.Equal(t, 0, report.Documents)
	})

	t.Run("index stays in sync across mixed operations", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		ctx := context.Background()
		reactID := createTestLibrary(t, db, "react")
		vueID := createTestLibrary(t, db, "vue")

		for i := range 20 {
			libID := reactID
			if i%3 == 0 {
				libID = vueID
			}
			path := fmt.Sprintf("doc-%d.md", i%7)
			upsertTestDocument(t, db, libID, path, "Doc", fmt.Sprintf("content revision %d", i))
			requireIndexConsistent(t, db)
		}

		_, err := sqlite.NewLibraryService(db).DeleteLibrary(ctx, "vue")
		require.NoError(t, err)
		report := requireIndexConsistent(t, db)

		docs, err := sqlite.NewDocumentService(db).ListDocuments(ctx, "react")
		require.NoError(t, err)
		assert.Equal(t, len(docs), report.Documents)
	})
}

func TestDocumentService_FindDocument(t *testing.T) {
	t.Parallel()

	t.Run("finds document by ID within its library", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewDocumentService(db)
		ctx := context.Background()
		libID := createTestLibrary(t, db, "react")
		createTestLibrary(t, db, "vue")
		doc := upsertTestDocument(t, db, libID, "hooks.md", "Hooks", "Hooks let you use state.")

		found, err := svc.FindDocumentByID(ctx, "react", doc.ID)
		require.NoError(t, err)
		assert.Equal(t, "hooks.md", found.Path)
		assert.Equal(t, "Hooks", found.Title)
		assert.Equal(t, "react", found.Library)
		assert.Equal(t, "Hooks let you use state.", found.Content)
		assert.Equal(t, doc.ContentHash, found.ContentHash)
		assert.Equal(t, doc.IndexedAt, found.IndexedAt)

		_, err = svc.FindDocumentByID(ctx, "vue", doc.ID)
		assert.Equal(t, libdoc.ENOTFOUND, libdoc.ErrorCode(err))
	})

	t.Run("finds document by exact path", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewDocumentService(db)
		ctx := context.Background()
		libID := createTestLibrary(t, db, "react")
		upsertTestDocument(t, db, libID, "guide/hooks.md", "Hooks", "content")

		found, err := svc.FindDocumentByPath(ctx, "react", "guide/hooks.md")
		require.NoError(t, err)
		assert.Equal(t, "Hooks", found.Title)

		_, err = svc.FindDocumentByPath(ctx, "react", "Guide/Hooks.md")
		assert.Equal(t, libdoc.ENOTFOUND, libdoc.ErrorCode(err))
	})

	t.Run("finds document by title ignoring case", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewDocumentService(db)
		ctx := context.Background()
		libID := createTestLibrary(t, db, "react")
		first := upsertTestDocument(t, db, libID, "a.md", "Getting Started", "first")
		upsertTestDocument(t, db, libID, "b.md", "getting started", "second")

		found, err := svc.FindDocumentByTitle(ctx, "react", "GETTING STARTED")
		require.NoError(t, err)
		assert.Equal(t, first.ID, found.ID)
	})

	t.Run("returns ENOTFOUND for unknown library", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)

		_, err := sqlite.NewDocumentService(db).FindDocumentByPath(context.Background(), "missing", "a.md")
		assert.Equal(t, libdoc.ENOTFOUND, libdoc.ErrorCode(err))
	})
}

func TestDocumentService_ListDocuments(t *testing.T) {
	t.Parallel()

	t.Run("returns documents ordered by path without content", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		libID := createTestLibrary(t, db, "react")
		upsertTestDocument(t, db, libID, "b.md", "B", "beta")
		upsertTestDocument(t, db, libID, "a.md", "A", "alpha")

		docs, err := sqlite.NewDocumentService(db).ListDocuments(context.Background(), "react")
		require.NoError(t, err)
		require.Len(t, docs, 2)
		assert.Equal(t, "a.md", docs[0].Path)
		assert.Equal(t, "b.md", docs[1].Path)
		assert.Empty(t, docs[0].Content)
		assert.NotEmpty(t, docs[0].ContentHash)
	})

	t.Run("returns empty slice for unknown library", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)

		docs, err := sqlite.NewDocumentService(db).ListDocuments(context.Background(), "missing")
		require.NoError(t, err)
		assert.NotNil(t, docs)
		assert.Empty(t, docs)
	})
}

func TestDocumentService_PruneDocuments(t *testing.T) {
	t.Parallel()

	t.Run("removes sections not in keep with their index entries", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewDocumentService(db)
		ctx := context.Background()
		libID := createTestLibrary(t, db, "react")
		upsertTestDocument(t, db, libID, "g.md", "Guide", "intro")
		upsertTestDocument(t, db, libID, "g.md##Example", "Guide > Example", "stale example")
		upsertTestDocument(t, db, libID, "g.md##Usage", "Guide > Usage", "usage")
		upsertTestDocument(t, db, libID, "g.mdx", "Other", "unrelated file")

		removed, err := svc.PruneDocuments(ctx, libID, "g.md", []string{"g.md", "g.md##Usage"})

		require.NoError(t, err)
		assert.Equal(t, 1, removed)

		docs, err := svc.ListDocuments(ctx, "react")
		require.NoError(t, err)
		var paths []string
		for _, d := range docs {
			paths = append(paths, d.Path)
		}
		assert.Equal(t, []string{"g.md", "g.md##Usage", "g.mdx"}, paths)

		results, err := sqlite.NewSearchService(db).Search(ctx, "stale", libdoc.SearchOptions{})
		require.NoError(t, err)
		assert.Empty(t, results)

		lib, err := sqlite.NewLibraryService(db).FindLibraryByName(ctx, "react")
		require.NoError(t, err)
		assert.Equal(t, 3, lib.DocCount)
		requireIndexConsistent(t, db)
	})

	t.Run("removes the whole document when it is not kept", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewDocumentService(db)
		ctx := context.Background()
		libID := createTestLibrary(t, db, "react")
		upsertTestDocument(t, db, libID, "g.md", "Guide", "whole")
		upsertTestDocument(t, db, libID, "g.md##Example", "Guide > Example", "example")

		removed, err := svc.PruneDocuments(ctx, libID, "g.md", []string{"g.md##Example"})

		require.NoError(t, err)
		assert.Equal(t, 1, removed)
		_, err = svc.FindDocumentByPath(ctx, "react", "g.md")
		assert.Equal(t, libdoc.ENOTFOUND, libdoc.ErrorCode(err))
		requireIndexConsistent(t, db)
	})

	t.Run("leaves other libraries alone", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewDocumentService(db)
		ctx := context.Background()
		reactID := createTestLibrary(t, db, "react")
		vueID := createTestLibrary(t, db, "vue")
		upsertTestDocument(t, db, vueID, "g.md##Example", "Guide > Example", "vue example")

		removed, err := svc.PruneDocuments(ctx, reactID, "g.md", nil)

		require.NoError(t, err)
		assert.Equal(t, 0, removed)
		_, err = svc.FindDocumentByPath(ctx, "vue", "g.md##Example")
		assert.NoError(t, err)
	})

	t.Run("returns EINVALID for empty path", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)

		_, err := sqlite.NewDocumentService(db).PruneDocuments(context.Background(), 1, "", nil)

		assert.Equal(t, libdoc.EINVALID, libdoc.ErrorCode(err))
	})
}

func TestDocumentService_CheckIndex(t *testing.T) {
	t.Parallel()

	t.Run("reports orphaned and missing index entries", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		ctx := context.Background()
		libID := createTestLibrary(t, db, "react")
		doc := upsertTestDocument(t, db, libID, "a.md", "A", "alpha")

		_, err := db.ExecContext(ctx, "DELETE FROM documents_fts WHERE rowid = ?", doc.ID)
		require.NoError(t, err)
		_, err = db.ExecContext(ctx,
			"INSERT INTO documents_fts (rowid, title, content, path) VALUES (999, 'x', 'y', 'z')")
		require.NoError(t, err)

		report, err := sqlite.NewDocumentService(db).CheckIndex(ctx)
		require.NoError(t, err)
		assert.False(t, report.Consistent())
		assert.Equal(t, 1, report.Orphans)
		assert.Equal(t, 1, report.Missing)
	})
}

func TestDocumentService_ResolveDocument(t *testing.T) {
	t.Parallel()

	t.Run("prefers ID over path over title", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewDocumentService(db)
		ctx := context.Background()
		libID := createTestLibrary(t, db, "react")

		byPath := upsertTestDocument(t, db, libID, "7", "Path Seven", "path content")
		byTitle := upsertTestDocument(t, db, libID, "title.md", "7", "title content")
		for i := range 4 {
			upsertTestDocument(t, db, libID, fmt.Sprintf("filler-%d.md", i), "Filler", "filler")
		}
		byID := upsertTestDocument(t, db, libID, "target.md", "Target", "id content")
		require.Equal(t, int64(7), byID.ID)

		found, err := libdoc.ResolveDocument(ctx, svc, "react", "7")
		require.NoError(t, err)
		assert.Equal(t, byID.ID, found.ID)
		assert.NotEqual(t, byPath.ID, found.ID)
		assert.NotEqual(t, byTitle.ID, found.ID)

		// Document 7 belongs to react, so in vue the path wins over the title.
		vueID := createTestLibrary(t, db, "vue")
		vueTitle := upsertTestDocument(t, db, vueID, "title.md", "7", "vue title content")
		vuePath := upsertTestDocument(t, db, vueID, "7", "Vue Seven", "vue path content")

		found, err = libdoc.ResolveDocument(ctx, svc, "vue", "7")
		require.NoError(t, err)
		assert.Equal(t, vuePath.ID, found.ID)
		assert.NotEqual(t, vueTitle.ID, found.ID)
	})

	t.Run("resolves titles ignoring case", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewDocumentService(db)
		libID := createTestLibrary(t, db, "react")
		byTitle := upsertTestDocument(t, db, libID, "title.md", "Seven", "title content")

		found, err := libdoc.ResolveDocument(context.Background(), svc, "react", "seven")
		require.NoError(t, err)
		assert.Equal(t, byTitle.ID, found.ID)
	})

	t.Run("falls back to path when ID is in another library", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewDocumentService(db)
		ctx := context.Background()
		reactID := createTestLibrary(t, db, "react")
		vueID := createTestLibrary(t, db, "vue")

		other := upsertTestDocument(t, db, vueID, "vue.md", "Vue", "vue")
		byPath := upsertTestDocument(t, db, reactID, fmt.Sprint(other.ID), "Numbered", "react")

		found, err := libdoc.ResolveDocument(ctx, svc, "react", fmt.Sprint(other.ID))
		require.NoError(t, err)
		assert.Equal(t, byPath.ID, found.ID)
	})

	t.Run("returns ENOTFOUND when nothing matches", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		libID := createTestLibrary(t, db, "react")
		upsertTestDocument(t, db, libID, "a.md", "A", strings.Repeat("alpha ", 3))

		_, err := libdoc.ResolveDocument(context.Background(), sqlite.NewDocumentService(db), "react", "zzz")
		assert.Equal(t, libdoc.ENOTFOUND, libdoc.ErrorCode(err))
	})
}
