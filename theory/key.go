package theory

// Key is a scale rooted at a tonic note.
type Key struct {
	tonic Note
	scale Scale
}

func NewKey(tonic Note, scale Scale) *Key {
	return &Key{tonic: tonic, scale: scale}
}

func (k *Key) Tonic() Note {
	return k.tonic
}

func (k *Key) Scale() Scale {
	return k.scale
}

// At returns the note the given number of scale steps from the tonic.
// Negative steps go down.
func (k *Key) At(steps int) NoteInKey {
	return NoteInKey{
		key:   k,
		note:  k.tonic.Offset(k.scale.offset(steps)),
		steps: steps,
	}
}

// OffsetTonic returns the key with the same scale rooted steps away.
func (k *Key) OffsetTonic(steps int) *Key {
	return &Key{tonic: k.At(steps).Note(), scale: k.scale}
}

// NotesAscending returns the first n notes going up from the tonic.
func (k *Key) NotesAscending(n int) []NoteInKey {
	out := make([]NoteInKey, n)
	for i := range out {
		out[i] = k.At(i)
	}
	return out
}

// NotesDescending returns the first n notes going down from the tonic.
func (k *Key) NotesDescending(n int) []NoteInKey {
	out := make([]NoteInKey, n)
	for i := range out {
		out[i] = k.At(-i)
	}
	return out
}

// NoteInKey is a note that remembers its position in a key, so it can be
// moved by scale steps rather than semitones.
type NoteInKey struct {
	key   *Key
	note  Note
	steps int
}

func (n NoteInKey) Offset(steps int) NoteInKey {
	return n.key.At(n.steps + steps)
}

func (n NoteInKey) Note() Note {
	return n.note
}

// StepsFromTonic is the signed scale distance from the key's tonic.
func (n NoteInKey) StepsFromTonic() int {
	return n.steps
}

func (n NoteInKey) String() string {
	return n.note.String()
}
