package filestorage

import (
	"os"
	"path/filepath"
	"testing"
)

func newStorage(t *testing.T) *LocalStorage {
	t.Helper()
	ls, err := NewLocalStorage(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocalStorage: %v", err)
	}
	return ls
}

func TestSaveReturnsLogicalPath(t *testing.T) {
	ls := newStorage(t)

	path, err := ls.Save(FolderPKL, "abc_dokumen_mentor.pdf", []byte("data"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if path != "/pkl/abc_dokumen_mentor.pdf" {
		t.Errorf("logical path = %q", path)
	}
	if !ls.Exists(path) {
		t.Error("saved blob should exist")
	}

	data, err := os.ReadFile(ls.Resolve(path))
	if err != nil {
		t.Fatalf("reading saved blob: %v", err)
	}
	if string(data) != "data" {
		t.Errorf("blob content = %q", data)
	}
}

func TestSaveOverwritesSameName(t *testing.T) {
	ls := newStorage(t)

	if _, err := ls.Save(FolderPKL, "x.pdf", []byte("old")); err != nil {
		t.Fatalf("first Save: %v", err)
	}
	path, err := ls.Save(FolderPKL, "x.pdf", []byte("new"))
	if err != nil {
		t.Fatalf("second Save: %v", err)
	}

	data, _ := os.ReadFile(ls.Resolve(path))
	if string(data) != "new" {
		t.Errorf("blob content after overwrite = %q", data)
	}
}

func TestSaveStripsTraversal(t *testing.T) {
	ls := newStorage(t)

	path, err := ls.Save(FolderJurnal, "../../etc/passwd", []byte("x"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if path != "/jurnal/passwd" {
		t.Errorf("logical path = %q", path)
	}

	if _, err := ls.Save(FolderJurnal, "..", []byte("x")); err == nil {
		t.Error("saving a bare traversal name should fail")
	}
}

func TestDeleteSkipsMissingAndBlank(t *testing.T) {
	ls := newStorage(t)

	if _, err := ls.Save(FolderPKL, "a.pdf", []byte("x")); err != nil {
		t.Fatalf("Save: %v", err)
	}

	deleted, err := ls.Delete(FolderPKL, "a.pdf", "missing.pdf", "")
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if deleted != 1 {
		t.Errorf("deleted = %d, want 1", deleted)
	}
	if ls.Exists("/pkl/a.pdf") {
		t.Error("deleted blob should not exist")
	}
}

func TestResolveConfinesToBase(t *testing.T) {
	ls := newStorage(t)

	got := ls.Resolve("/pkl/../../secret")
	want := filepath.Join(ls.basePath, "pkl", "secret")
	if got != want {
		t.Errorf("Resolve = %q, want %q", got, want)
	}
}
