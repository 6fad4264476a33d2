package common

// File names inside the application data directory.
const (
	RosterFileName     = "students.json"
	CredentialFileName = "users.json"
	DatabaseFileName   = "gradesys.db"
	ExportFileName     = "students.csv"
	ReportFileName     = "scores_sheet.txt"
	CardsDirName       = "individual_cards"
)
