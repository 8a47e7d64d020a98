package discovery

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildTree creates the given relative files under a fresh temp dir.
func buildTree(t *testing.T, files []string) string {
	t.Helper()
	root := t.TempDir()
	for _, f := range files {
		path := filepath.Join(root, f)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte("content\n"), 0644))
	}
	return root
}

// basenames maps a FileSet to sorted file basenames for easier assertions.
func basenames(files *FileSet) []string {
	var names []string
	for _, p := range files.Paths() {
		names = append(names, filepath.Base(p))
	}
	return names
}

func TestDiscoverCollectsAllFiles(t *testing.T) {
	root := buildTree(t, []string{
		"a.txt",
		"b/c.txt",
		"b/deep/d.txt",
	})

	files, err := Discover([]string{root}, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"a.txt", "c.txt", "d.txt"}, basenames(files))
}

func TestDiscoverBasenameExclusion(t *testing.T) {
	root := buildTree(t, []string{
		"keep.txt",
		"b/drop.log",
		"drop.log",
	})

	rules := CompileRules([]string{"*.log"}, nil)
	files, err := Discover([]string{root}, rules)
	require.NoError(t, err)

	// "*.log" never matches a slashed full path, but it matches the
	// basename of every .log file at any depth.
	assert.Equal(t, []string{"keep.txt"}, basenames(files))
}

func TestDiscoverFullPathExclusion(t *testing.T) {
	root := buildTree(t, []string{
		"src/keep.txt",
		"src/vendor/drop.txt",
	})

	rules := CompileRules([]string{"**/vendor/**"}, nil)
	files, err := Discover([]string{root}, rules)
	require.NoError(t, err)

	assert.Equal(t, []string{"keep.txt"}, basenames(files))
}

func TestDiscoverExclusionContainment(t *testing.T) {
	// Every file inside an excluded directory stays out of the set, even
	// ones nothing else would exclude.
	root := buildTree(t, []string{
		"keep.txt",
		"node_modules/innocent.txt",
		"node_modules/nested/also_innocent.txt",
	})

	rules := CompileRules([]string{"node_modules"}, nil)
	files, err := Discover([]string{root}, rules)
	require.NoError(t, err)

	assert.Equal(t, []string{"keep.txt"}, basenames(files))
}

func TestDiscoverPrunesExcludedDirectories(t *testing.T) {
	// An unreadable directory aborts the walk when visited, so discovery
	// only succeeds because the exclusion stops the descent entirely.
	if os.Geteuid() == 0 {
		t.Skip("directory permissions are not enforced for root")
	}
	root := buildTree(t, []string{"keep.txt"})
	locked := filepath.Join(root, "locked")
	require.NoError(t, os.MkdirAll(locked, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(locked, "secret.txt"), []byte("x"), 0644))
	require.NoError(t, os.Chmod(locked, 0000))
	t.Cleanup(func() { os.Chmod(locked, 0755) })

	rules := CompileRules([]string{"locked"}, nil)
	files, err := Discover([]string{root}, rules)
	require.NoError(t, err)
	assert.Equal(t, []string{"keep.txt"}, basenames(files))

	// Without the rule the same walk aborts.
	_, err = Discover([]string{root}, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrWalkAborted)
}

func TestDiscoverInvalidGlobIsInert(t *testing.T) {
	root := buildTree(t, []string{"a.txt", "b.txt"})

	var badPatterns []string
	rules := CompileRules([]string{"[", "*.log"}, func(pattern string, err error) {
		badPatterns = append(badPatterns, pattern)
		assert.Error(t, err)
	})

	files, err := Discover([]string{root}, rules)
	require.NoError(t, err)

	assert.Equal(t, []string{"["}, badPatterns)
	assert.Equal(t, []string{"a.txt", "b.txt"}, basenames(files))
}

func TestDiscoverDeterministicOrder(t *testing.T) {
	root := buildTree(t, []string{
		"z.txt", "a.txt", "m/q.txt", "m/b.txt",
	})

	first, err := Discover([]string{root}, nil)
	require.NoError(t, err)
	second, err := Discover([]string{root}, nil)
	require.NoError(t, err)

	assert.Equal(t, first.Paths(), second.Paths())

	sorted := append([]string(nil), first.Paths()...)
	assert.IsNonDecreasing(t, sorted)
}

func TestDiscoverOverlappingRootsDeduplicate(t *testing.T) {
	root := buildTree(t, []string{"b/c.txt"})

	files, err := Discover([]string{root, filepath.Join(root, "b")}, nil)
	require.NoError(t, err)

	assert.Equal(t, 1, files.Len())
}

func TestDiscoverMissingRootAborts(t *testing.T) {
	_, err := Discover([]string{filepath.Join(t.TempDir(), "missing")}, nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrWalkAborted)
}

func TestDiscoverFileRoot(t *testing.T) {
	root := buildTree(t, []string{"one.txt"})

	files, err := Discover([]string{filepath.Join(root, "one.txt")}, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"one.txt"}, basenames(files))
}

func TestFileSetInsertIgnoresDuplicates(t *testing.T) {
	set := NewFileSet()
	set.Insert("b")
	set.Insert("a")
	set.Insert("b")

	assert.Equal(t, 2, set.Len())
	assert.Equal(t, []string{"a", "b"}, set.Paths())
}
