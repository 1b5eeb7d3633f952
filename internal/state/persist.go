package state

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/satchelapp/satchel/internal/portal"
)

// SessionStorage persists the auth session across runs. Implementations must
// tolerate concurrent calls from store methods.
type SessionStorage interface {
	LoadSession() (portal.Session, bool)
	SaveSession(portal.Session)
	ClearSessionToken()
	ClearSession()
}

// SelectionStorage persists the student list and current-student pointer.
type SelectionStorage interface {
	LoadSelection() ([]portal.Student, int64, bool)
	SaveSelection(students []portal.Student, currentID int64)
	ClearSelection()
}

// persistVersion tags every persisted file. Files written by an incompatible
// release are discarded on load rather than misread.
const persistVersion = 1

const (
	defaultDataDir  = "~/.local/share/satchel"
	sessionFileName = "session.toml"
	studentFileName = "students.toml"
)

type persistedUser struct {
	ID            int64  `toml:"id"`
	Name          string `toml:"name"`
	Email         string `toml:"email"`
	Role          string `toml:"role"`
	OfflineAccess bool   `toml:"offline_access"`
	OnlineAccess  bool   `toml:"online_access"`
}

type sessionFile struct {
	Version int           `toml:"version"`
	Token   string        `toml:"token"`
	User    persistedUser `toml:"user"`
}

type persistedStudent struct {
	ID           int64  `toml:"id"`
	Name         string `toml:"name"`
	StudentID    string `toml:"student_id"`
	CurrentLevel string `toml:"current_level"`
}

type studentFile struct {
	Version   int                `toml:"version"`
	CurrentID int64              `toml:"current_id"`
	Students  []persistedStudent `toml:"students"`
}

// FileStorage keeps session and selection in two independent TOML files
// under a data directory. The two files share nothing: clearing one never
// touches the other.
type FileStorage struct {
	dir string
}

// NewFileStorage resolves dir (empty means the default data dir) and returns
// a FileStorage. The directory is created lazily on first save.
func NewFileStorage(dir string) (*FileStorage, error) {
	resolved, err := resolveDir(dir)
	if err != nil {
		return nil, err
	}
	return &FileStorage{dir: resolved}, nil
}

// LoadSession reads the persisted session. A missing, unreadable, or
// version-mismatched file yields ok=false rather than an error: persisted
// state is a convenience, never a requirement.
func (fs *FileStorage) LoadSession() (portal.Session, bool) {
	var file sessionFile
	if !fs.read(sessionFileName, &file) {
		return portal.Session{}, false
	}
	if file.Version != persistVersion || file.Token == "" {
		return portal.Session{}, false
	}
	return portal.Session{
		Token: file.Token,
		User: portal.User{
			ID:    file.User.ID,
			Name:  file.User.Name,
			Email: file.User.Email,
			Role:  file.User.Role,
			SystemAccess: portal.SystemAccess{
				Offline: file.User.OfflineAccess,
				Online:  file.User.OnlineAccess,
			},
		},
	}, true
}

// SaveSession writes the token and minimal user record. The file is private
// to the user: it contains a live credential.
func (fs *FileStorage) SaveSession(session portal.Session) {
	fs.write(sessionFileName, sessionFile{
		Version: persistVersion,
		Token:   session.Token,
		User: persistedUser{
			ID:            session.User.ID,
			Name:          session.User.Name,
			Email:         session.User.Email,
			Role:          session.User.Role,
			OfflineAccess: session.User.SystemAccess.Offline,
			OnlineAccess:  session.User.SystemAccess.Online,
		},
	}, 0o600)
}

// ClearSessionToken drops only the token, keeping the user record for
// pre-filling the next login.
func (fs *FileStorage) ClearSessionToken() {
	var file sessionFile
	if !fs.read(sessionFileName, &file) {
		return
	}
	file.Token = ""
	file.Version = persistVersion
	fs.write(sessionFileName, file, 0o600)
}

// ClearSession removes the session file entirely.
func (fs *FileStorage) ClearSession() {
	_ = os.Remove(filepath.Join(fs.dir, sessionFileName))
}

// LoadSelection reads the persisted student list and current pointer.
func (fs *FileStorage) LoadSelection() ([]portal.Student, int64, bool) {
	var file studentFile
	if !fs.read(studentFileName, &file) {
		return nil, 0, false
	}
	if file.Version != persistVersion {
		return nil, 0, false
	}
	students := make([]portal.Student, 0, len(file.Students))
	for _, s := range file.Students {
		students = append(students, portal.Student{
			ID:           s.ID,
			Name:         s.Name,
			StudentID:    s.StudentID,
			CurrentLevel: s.CurrentLevel,
		})
	}
	return students, file.CurrentID, true
}

// SaveSelection writes the full student list and the current pointer.
func (fs *FileStorage) SaveSelection(students []portal.Student, currentID int64) {
	out := studentFile{Version: persistVersion, CurrentID: currentID}
	for _, s := range students {
		out.Students = append(out.Students, persistedStudent{
			ID:           s.ID,
			Name:         s.Name,
			StudentID:    s.StudentID,
			CurrentLevel: s.CurrentLevel,
		})
	}
	fs.write(studentFileName, out, 0o644)
}

// ClearSelection removes the student file.
func (fs *FileStorage) ClearSelection() {
	_ = os.Remove(filepath.Join(fs.dir, studentFileName))
}

func (fs *FileStorage) read(name string, dest any) bool {
	data, err := os.ReadFile(filepath.Join(fs.dir, name))
	if err != nil {
		return false
	}
	if err := toml.Unmarshal(data, dest); err != nil {
		return false // Graceful degradation
	}
	return true
}

func (fs *FileStorage) write(name string, value any, mode os.FileMode) {
	if err := os.MkdirAll(fs.dir, 0o755); err != nil {
		return
	}
	data, err := toml.Marshal(value)
	if err != nil {
		return
	}
	_ = os.WriteFile(filepath.Join(fs.dir, name), data, mode)
}

func resolveDir(dir string) (string, error) {
	trimmed := strings.TrimSpace(dir)
	if trimmed == "" {
		trimmed = defaultDataDir
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	abs, err := filepath.Abs(trimmed)
	if err != nil {
		return "", fmt.Errorf("resolve data dir: %w", err)
	}
	return abs, nil
}
