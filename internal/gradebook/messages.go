package gradebook

// Prompts shown before reading a line of input.
const (
	PromptChoice   = "Enter your choice: "
	PromptName     = "Enter student name: "
	PromptGrade    = "Enter grade: "
	PromptNewGrade = "Enter new grade: "
)

// Messages reported after an operation.
const (
	MsgAdded         = "Student added successfully."
	MsgUpdated       = "Grade updated successfully."
	MsgNotFound      = "Student not found."
	MsgExiting       = "Exiting program."
	MsgInvalidChoice = "Invalid choice. Please try again."

	// DisplayHeader precedes the record lines; it is printed even when
	// there are no records.
	DisplayHeader = "\nStudent Grades:"
)

// FormatRecord renders one record line of the display listing.
func FormatRecord(name, grade string) string {
	return name + " : " + grade
}

// Menu choices.
const (
	ChoiceAdd     = "1"
	ChoiceUpdate  = "2"
	ChoiceDisplay = "3"
	ChoiceExit    = "4"
)
