package system

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// maxLinkHops bounds symlink resolution in MockFS, like ELOOP on Linux.
const maxLinkHops = 40

// MockFS implements FileSystem for testing.
// Symlinks are resolved at whole-path granularity: parent directories
// are never symlinks in the mock.
type MockFS struct {
	mu    sync.RWMutex
	files map[string][]byte
	dirs  map[string]bool
	links map[string]string

	// Error injection
	ReadFileErr     error
	MkdirAllErr     error
	EvalSymlinksErr error
	SymlinkErr      error
	RenameErr       error
	RemoveErr       error
}

// NewMockFS creates a new MockFS with an empty filesystem.
func NewMockFS() *MockFS {
	return &MockFS{
		files: make(map[string][]byte),
		dirs:  make(map[string]bool),
		links: make(map[string]string),
	}
}

// AddFile adds a file to the mock filesystem, creating parent directories.
func (m *MockFS) AddFile(path string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	path = filepath.Clean(path)
	m.files[path] = data
	m.addParents(path)
}

// AddDir adds a directory (and its parents) to the mock filesystem.
func (m *MockFS) AddDir(path string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	path = filepath.Clean(path)
	m.dirs[path] = true
	m.addParents(path)
}

// AddSymlink adds a symbolic link at path pointing to target, creating parent directories.
func (m *MockFS) AddSymlink(path, target string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	path = filepath.Clean(path)
	m.links[path] = target
	m.addParents(path)
}

// Link returns the raw target of the symlink at path.
func (m *MockFS) Link(path string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	target, ok := m.links[filepath.Clean(path)]
	return target, ok
}

// Links returns the paths of all symlinks in the mock filesystem.
func (m *MockFS) Links() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	paths := make([]string, 0, len(m.links))
	for p := range m.links {
		paths = append(paths, p)
	}
	return paths
}

func (m *MockFS) addParents(path string) {
	dir := filepath.Dir(path)
	for dir != "." && dir != "/" {
		m.dirs[dir] = true
		dir = filepath.Dir(dir)
	}
}

func (m *MockFS) existsLocked(path string) bool {
	_, isFile := m.files[path]
	_, isLink := m.links[path]
	return isFile || isLink || m.dirs[path]
}

func (m *MockFS) parentExistsLocked(path string) bool {
	dir := filepath.Dir(path)
	return dir == "/" || dir == "." || m.dirs[dir]
}

func (m *MockFS) ReadFile(path string) ([]byte, error) {
	if m.ReadFileErr != nil {
		return nil, m.ReadFileErr
	}
	resolved, err := m.EvalSymlinks(path)
	if err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.files[resolved]
	if !ok {
		return nil, &fs.PathError{Op: "read", Path: path, Err: fs.ErrNotExist}
	}
	return data, nil
}

func (m *MockFS) MkdirAll(path string, perm fs.FileMode) error {
	if m.MkdirAllErr != nil {
		return m.MkdirAllErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	current := filepath.Clean(path)
	for current != "." && current != "/" {
		if _, isFile := m.files[current]; isFile {
			return &fs.PathError{Op: "mkdir", Path: current, Err: fs.ErrExist}
		}
		m.dirs[current] = true
		current = filepath.Dir(current)
	}
	return nil
}

func (m *MockFS) Lstat(path string) (fs.FileInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	path = filepath.Clean(path)

	if _, ok := m.links[path]; ok {
		return &mockFileInfo{name: filepath.Base(path), mode: fs.ModeSymlink | 0777}, nil
	}
	if data, ok := m.files[path]; ok {
		return &mockFileInfo{name: filepath.Base(path), size: int64(len(data)), mode: 0644}, nil
	}
	if m.dirs[path] {
		return &mockFileInfo{name: filepath.Base(path), mode: fs.ModeDir | 0755}, nil
	}
	return nil, &fs.PathError{Op: "lstat", Path: path, Err: fs.ErrNotExist}
}

func (m *MockFS) Exists(path string) bool {
	_, err := m.EvalSymlinks(path)
	return err == nil
}

func (m *MockFS) Readlink(path string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	path = filepath.Clean(path)
	if target, ok := m.links[path]; ok {
		return target, nil
	}
	if m.existsLocked(path) {
		return "", &fs.PathError{Op: "readlink", Path: path, Err: fs.ErrInvalid}
	}
	return "", &fs.PathError{Op: "readlink", Path: path, Err: fs.ErrNotExist}
}

func (m *MockFS) EvalSymlinks(path string) (string, error) {
	if m.EvalSymlinksErr != nil {
		return "", m.EvalSymlinksErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	current := filepath.Clean(path)
	for hops := 0; hops <= maxLinkHops; hops++ {
		target, isLink := m.links[current]
		if !isLink {
			if m.existsLocked(current) {
				return current, nil
			}
			return "", &fs.PathError{Op: "lstat", Path: current, Err: fs.ErrNotExist}
		}
		if !filepath.IsAbs(target) {
			target = filepath.Join(filepath.Dir(current), target)
		}
		current = filepath.Clean(target)
	}
	return "", &fs.PathError{Op: "lstat", Path: path, Err: fs.ErrInvalid}
}

func (m *MockFS) Symlink(oldname, newname string) error {
	if m.SymlinkErr != nil {
		return m.SymlinkErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	newname = filepath.Clean(newname)

	if m.existsLocked(newname) {
		return &fs.PathError{Op: "symlink", Path: newname, Err: fs.ErrExist}
	}
	if !m.parentExistsLocked(newname) {
		return &fs.PathError{Op: "symlink", Path: newname, Err: fs.ErrNotExist}
	}
	m.links[newname] = oldname
	return nil
}

func (m *MockFS) Rename(oldpath, newpath string) error {
	if m.RenameErr != nil {
		return m.RenameErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	oldpath = filepath.Clean(oldpath)
	newpath = filepath.Clean(newpath)

	if !m.parentExistsLocked(newpath) {
		return &os.LinkError{Op: "rename", Old: oldpath, New: newpath, Err: fs.ErrNotExist}
	}
	if m.dirs[newpath] {
		return &os.LinkError{Op: "rename", Old: oldpath, New: newpath, Err: fs.ErrExist}
	}

	if target, ok := m.links[oldpath]; ok {
		delete(m.files, newpath)
		m.links[newpath] = target
		delete(m.links, oldpath)
		return nil
	}
	if data, ok := m.files[oldpath]; ok {
		delete(m.links, newpath)
		m.files[newpath] = data
		delete(m.files, oldpath)
		return nil
	}
	return &os.LinkError{Op: "rename", Old: oldpath, New: newpath, Err: fs.ErrNotExist}
}

func (m *MockFS) Remove(path string) error {
	if m.RemoveErr != nil {
		return m.RemoveErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	path = filepath.Clean(path)

	if _, ok := m.links[path]; ok {
		delete(m.links, path)
		return nil
	}
	if _, ok := m.files[path]; ok {
		delete(m.files, path)
		return nil
	}
	if m.dirs[path] {
		delete(m.dirs, path)
		return nil
	}
	return &fs.PathError{Op: "remove", Path: path, Err: fs.ErrNotExist}
}

// mockFileInfo implements fs.FileInfo for testing.
type mockFileInfo struct {
	name string
	size int64
	mode fs.FileMode
}

func (m *mockFileInfo) Name() string       { return m.name }
func (m *mockFileInfo) Size() int64        { return m.size }
func (m *mockFileInfo) Mode() fs.FileMode  { return m.mode }
func (m *mockFileInfo) ModTime() time.Time { return time.Time{} }
func (m *mockFileInfo) IsDir() bool        { return m.mode.IsDir() }
func (m *mockFileInfo) Sys() interface{}   { return nil }

// MockExecutor implements CommandExecutor for testing.
type MockExecutor struct {
	mu sync.Mutex

	// Commands records all executed commands for verification.
	Commands []MockCommand

	// Responses maps command patterns to responses. Lookup tries the full
	// command line first, then "command arg1", then "command".
	Responses map[string]MockResponse

	// DefaultResponse is used when no matching response is found.
	DefaultResponse MockResponse
}

// MockCommand records an executed command.
type MockCommand struct {
	Name string
	Args []string
}

// Line returns the command rendered as a space-separated string.
func (c MockCommand) Line() string {
	return strings.Join(append([]string{c.Name}, c.Args...), " ")
}

// MockResponse defines the response for a command.
type MockResponse struct {
	Stdout []byte
	Stderr []byte
	Err    error
}

// NewMockExecutor creates a new MockExecutor.
func NewMockExecutor() *MockExecutor {
	return &MockExecutor{
		Commands:  make([]MockCommand, 0),
		Responses: make(map[string]MockResponse),
	}
}

// AddResponse adds a response for a specific command pattern.
func (m *MockExecutor) AddResponse(pattern string, resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Responses[pattern] = resp
}

func (m *MockExecutor) record(name string, args []string) MockResponse {
	m.mu.Lock()
	defer m.mu.Unlock()

	cmd := MockCommand{Name: name, Args: args}
	m.Commands = append(m.Commands, cmd)

	keys := []string{cmd.Line()}
	if len(args) > 0 {
		keys = append(keys, name+" "+args[0])
	}
	keys = append(keys, name)

	for _, key := range keys {
		if resp, ok := m.Responses[key]; ok {
			return resp
		}
	}
	return m.DefaultResponse
}

func (m *MockExecutor) RunQuiet(ctx context.Context, name string, args ...string) error {
	return m.record(name, args).Err
}

func (m *MockExecutor) Capture(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	resp := m.record(name, args)
	return resp.Stdout, resp.Stderr, resp.Err
}

func (m *MockExecutor) ExecuteInteractive(ctx context.Context, name string, args ...string) error {
	return m.record(name, args).Err
}

// LastCommand returns the most recently executed command.
func (m *MockExecutor) LastCommand() (MockCommand, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Commands) == 0 {
		return MockCommand{}, false
	}
	return m.Commands[len(m.Commands)-1], true
}

// Lines returns every recorded command rendered with MockCommand.Line.
func (m *MockExecutor) Lines() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	lines := make([]string, len(m.Commands))
	for i, c := range m.Commands {
		lines[i] = c.Line()
	}
	return lines
}

// Reset clears all recorded commands.
func (m *MockExecutor) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Commands = make([]MockCommand, 0)
}
