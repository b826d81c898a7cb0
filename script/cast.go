package script

// ResolveSpeaker looks up a speaker id in the cast table. A miss is not an
// error here — spec §4.4 step 7 makes an unknown speaker a warning, never
// fatal — callers decide what warning to raise with the ok=false result.
func (s *Script) ResolveSpeaker(speakerID string) (Cast, bool) {
	member, ok := s.Cast[speakerID]
	return member, ok
}
