package editor

import (
	"log/slog"

	"github.com/google/uuid"

	"cutboard/internal/board"
	"cutboard/internal/logging"
	"cutboard/internal/undo"
)

// Session is one editing session over a clip library and a storyboard.
type Session struct {
	ID         string
	Library    *board.Document
	Storyboard *board.Document

	ActiveKind  board.Kind
	ActiveTrack int

	engines map[board.Kind]*undo.Engine
	dirty   map[board.Kind]bool
	logger  *slog.Logger
}

// NewSession opens a session over two fresh documents sharing the given
// master properties.
func NewSession(master board.Master, logger *slog.Logger) *Session {
	return Open(
		board.NewDocument(board.KindLibrary, master),
		board.NewDocument(board.KindStoryboard, master),
		logger,
	)
}

// Open starts a session over already-loaded documents.
func Open(library, storyboard *board.Document, logger *slog.Logger) *Session {
	session := &Session{
		ID:          uuid.NewString(),
		Library:     library,
		Storyboard:  storyboard,
		ActiveKind:  board.KindStoryboard,
		ActiveTrack: 1,
		engines: map[board.Kind]*undo.Engine{
			board.KindLibrary:    undo.NewEngine(library),
			board.KindStoryboard: undo.NewEngine(storyboard),
		},
		dirty: map[board.Kind]bool{},
	}
	session.logger = logging.NewComponentLogger(logger, "editor").With(
		logging.String(logging.FieldSessionID, session.ID),
	)
	return session
}

// Document returns the document of the given kind.
func (s *Session) Document(kind board.Kind) *board.Document {
	if kind == board.KindLibrary {
		return s.Library
	}
	return s.Storyboard
}

// Other returns the document the given kind does not name.
func (s *Session) Other(kind board.Kind) *board.Document {
	if kind == board.KindLibrary {
		return s.Storyboard
	}
	return s.Library
}

// ActiveDocument returns the document currently holding focus.
func (s *Session) ActiveDocument() *board.Document {
	return s.Document(s.ActiveKind)
}

// PushUndo snapshots the named document after an edit and marks it dirty.
func (s *Session) PushUndo(kind board.Kind, feature string, touched int64) {
	s.engines[kind].Push(feature, touched, s.Document(kind))
	s.dirty[kind] = true
}

// BeginGroup opens an undo bracket on the named document.
func (s *Session) BeginGroup(kind board.Kind) {
	s.engines[kind].BeginGroup()
}

// EndGroup closes an undo bracket on the named document.
func (s *Session) EndGroup(kind board.Kind) {
	s.engines[kind].EndGroup()
}

// Undo replaces the named document with its previous snapshot. It reports
// whether anything was undone; callers must treat every story id they hold
// as suspect afterwards and re-validate against the new document.
func (s *Session) Undo(kind board.Kind) bool {
	restored := s.engines[kind].PopUndo()
	if restored == nil {
		return false
	}
	s.replace(kind, restored)
	s.logger.Debug("undo applied", logging.String(logging.FieldDocument, string(kind)))
	return true
}

// Redo replaces the named document with the next undone snapshot.
func (s *Session) Redo(kind board.Kind) bool {
	restored := s.engines[kind].Redo()
	if restored == nil {
		return false
	}
	s.replace(kind, restored)
	s.logger.Debug("redo applied", logging.String(logging.FieldDocument, string(kind)))
	return true
}

func (s *Session) replace(kind board.Kind, doc *board.Document) {
	// Bump so consumers watching the version counter see the replacement
	// even when the restored snapshot predates the live document.
	doc.BumpVersion()
	if kind == board.KindLibrary {
		s.Library = doc
	} else {
		s.Storyboard = doc
	}
	s.dirty[kind] = true
}

// UndoFeatureName exposes the label of the pending undo for UI affordance.
func (s *Session) UndoFeatureName(kind board.Kind) (string, bool) {
	return s.engines[kind].UndoFeatureName()
}

// RedoFeatureName exposes the label of the pending redo for UI affordance.
func (s *Session) RedoFeatureName(kind board.Kind) (string, bool) {
	return s.engines[kind].RedoFeatureName()
}

// Dirty reports whether the named document has unsaved changes.
func (s *Session) Dirty(kind board.Kind) bool {
	return s.dirty[kind]
}

// MarkSaved clears the unsaved-changes flag after a successful save.
func (s *Session) MarkSaved(kind board.Kind) {
	s.dirty[kind] = false
}
