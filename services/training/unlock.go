package training

// UnlockInput is the slice element ResolveUnlocks folds over: one entry
// per module in catalog order.
type UnlockInput struct {
	Completed      bool
	Passed         bool
	ResourceModule bool
}

// ResolveUnlocks derives, for an ordered sequence of progress entries,
// whether each module is accessible. The first module is always unlocked;
// resource modules are always unlocked; anything else unlocks only once
// the previous module is completed and passed.
//
// This is the single source of unlock truth. It is recomputed on every
// read and never cached, since any upstream record can change between
// reads.
func ResolveUnlocks(seq []UnlockInput) []bool {
	unlocked := make([]bool, len(seq))
	for i, entry := range seq {
		switch {
		case i == 0:
			unlocked[i] = true
		case entry.ResourceModule:
			unlocked[i] = true
		default:
			unlocked[i] = seq[i-1].Completed && seq[i-1].Passed
		}
	}
	return unlocked
}
