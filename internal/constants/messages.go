package constants

// User-facing messages shown in the blocking message modal. Every failure the
// user must acknowledge goes through one of these or a formatted variant.
const (
	MsgNoCategories    = "No marker categories defined. Add one in Settings before creating markers."
	MsgNothingToExport = "This project has no markers to export."
	MsgNoAudioLinked   = "No audio file is linked to this project yet. Use 'l' to link one."
	MsgAudioMissing    = "The linked audio file can no longer be found. Re-link it to resume playback."
	MsgEmptyCategory   = "Category name must not be empty."
	MsgEmptyTitle      = "Project title must not be empty."
)
