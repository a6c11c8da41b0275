package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/wilbur182/schemer/internal/scheme"
)

func testClock() func() time.Time {
	at := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	return func() time.Time { return at }
}

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(t.TempDir(), nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return st
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	st := openTestStore(t)

	s := scheme.New("My Scheme", scheme.WithClock(testClock()))
	s.SetColor("CARET_COLOR", &scheme.Color{R: 0x12, G: 0x34, B: 0x56})
	s.SetAttributes(scheme.TextKey, &scheme.TextAttributes{
		Foreground: &scheme.Color{R: 0xaa, G: 0xbb, B: 0xcc},
	})
	if err := st.Save(s); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := st.Load(FileName("My Scheme"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Name() != "My Scheme" {
		t.Errorf("Name = %q", loaded.Name())
	}
	if c := loaded.Color("CARET_COLOR"); c == nil || c.Hex() != "123456" {
		t.Errorf("CARET_COLOR = %v", c)
	}
}

func TestLoadAllSkipsCorruptFiles(t *testing.T) {
	st := openTestStore(t)

	good := scheme.New("Good", scheme.WithClock(testClock()))
	if err := st.Save(good); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := os.WriteFile(filepath.Join(st.Dir(), "broken.xml"), []byte("<scheme"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(st.Dir(), "notes.txt"), []byte("not a scheme"), 0o644); err != nil {
		t.Fatal(err)
	}

	schemes, err := st.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if len(schemes) != 1 || schemes[0].Name() != "Good" {
		t.Errorf("LoadAll = %v, want just Good", schemes)
	}
}

func TestLoadAllSkipsNewerVersions(t *testing.T) {
	st := openTestStore(t)
	doc := `<scheme name="Future" version="999"/>`
	if err := os.WriteFile(filepath.Join(st.Dir(), "future.xml"), []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	schemes, err := st.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if len(schemes) != 0 {
		t.Errorf("LoadAll = %v, want none", schemes)
	}
}

func TestSaveSkipsUnchangedContent(t *testing.T) {
	st := openTestStore(t)

	s := scheme.New("Stable", scheme.WithClock(testClock()))
	if err := st.Save(s); err != nil {
		t.Fatalf("Save: %v", err)
	}

	// Remove the file behind the store's back. An unchanged scheme must not
	// be rewritten, so the file stays gone.
	path := filepath.Join(st.Dir(), FileName("Stable"))
	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}
	if err := st.Save(s); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("unchanged scheme was rewritten")
	}

	// Changing content forces a write.
	s.SetColor("CARET_COLOR", &scheme.Color{R: 1, G: 2, B: 3})
	if err := st.Save(s); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("changed scheme not written: %v", err)
	}
}

func TestSaveSkipsStampOnlyChanges(t *testing.T) {
	st := openTestStore(t)

	at := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	s := scheme.New("Stamped", scheme.WithClock(func() time.Time { return at }))
	s.SetDefaultMetaInfo(nil)
	if err := st.Save(s); err != nil {
		t.Fatalf("Save: %v", err)
	}

	// A later save restamps the modified time. With nothing else changed the
	// file must not be rewritten.
	at = at.Add(time.Hour)
	path := filepath.Join(st.Dir(), FileName("Stamped"))
	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}
	if err := st.Save(s); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("stamp-only change was rewritten")
	}

	// A real change still writes, even alongside a fresh stamp.
	at = at.Add(time.Hour)
	s.SetColor("CARET_COLOR", &scheme.Color{R: 4, G: 5, B: 6})
	if err := st.Save(s); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("changed scheme not written: %v", err)
	}
}

func TestDelete(t *testing.T) {
	st := openTestStore(t)

	s := scheme.New("Doomed", scheme.WithClock(testClock()))
	if err := st.Save(s); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := st.Delete("Doomed"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := os.Stat(filepath.Join(st.Dir(), FileName("Doomed"))); !os.IsNotExist(err) {
		t.Error("file still present after Delete")
	}

	// Deleting a scheme that has no file is fine.
	if err := st.Delete("Never Existed"); err != nil {
		t.Errorf("Delete(missing) = %v", err)
	}
}

func TestFileName(t *testing.T) {
	if got := FileName("_@user_Dusk"); got != "_@user_Dusk.xml" {
		t.Errorf("FileName = %q", got)
	}
	if got := FileName("a/b\\c:d"); got != "a_b_c_d.xml" {
		t.Errorf("FileName = %q", got)
	}
}
