package holdem

import "errors"

var (
	// ErrIllegalAction reports a mutator called when its legality query
	// would have returned false.
	ErrIllegalAction = errors.New("holdem: illegal action")

	// ErrNotAtLastAction reports a mutation attempted while the replay
	// cursor is rewound into history.
	ErrNotAtLastAction = errors.New("holdem: not at last action")

	// ErrReplayMismatch reports a recorded action that does not match the
	// state it is replayed against.
	ErrReplayMismatch = errors.New("holdem: replay mismatch")

	// ErrConservation reports a settlement that creates or destroys chips.
	ErrConservation = errors.New("holdem: chip conservation violated")

	// ErrDuplicateCard reports a card used twice across hands and boards.
	ErrDuplicateCard = errors.New("holdem: duplicate card")

	// ErrBadConfig reports an invalid table configuration.
	ErrBadConfig = errors.New("holdem: bad configuration")
)
