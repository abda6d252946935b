package console

import (
	"context"

	"gradebook/internal/gradebook"
)

// Command is one menu entry. Run reports done=true to end the loop.
type Command struct {
	Key   string
	Label string
	Run   func(ctx context.Context, s *Session) (done bool, err error)
}

// DefaultCommands is the menu, in display order.
func DefaultCommands() []Command {
	return []Command{
		{Key: gradebook.ChoiceAdd, Label: "Add Student", Run: addStudent},
		{Key: gradebook.ChoiceUpdate, Label: "Update Student Grade", Run: updateStudent},
		{Key: gradebook.ChoiceDisplay, Label: "Display All Grades", Run: displayGrades},
		{Key: gradebook.ChoiceExit, Label: "Exit", Run: exitProgram},
	}
}

func addStudent(ctx context.Context, s *Session) (bool, error) {
	name, err := s.prompt(ctx, gradebook.PromptName)
	if err != nil {
		return false, err
	}
	grade, err := s.prompt(ctx, gradebook.PromptGrade)
	if err != nil {
		return false, err
	}

	msg, err := gradebook.Add(ctx, s.store, name, grade)
	if err != nil {
		return false, err
	}
	s.println(msg)
	return false, nil
}

// updateStudent asks for the new grade only once the name is known.
func updateStudent(ctx context.Context, s *Session) (bool, error) {
	name, err := s.prompt(ctx, gradebook.PromptName)
	if err != nil {
		return false, err
	}

	found, err := gradebook.Lookup(ctx, s.store, name)
	if err != nil {
		return false, err
	}
	if !found {
		s.println(gradebook.MsgNotFound)
		return false, nil
	}

	grade, err := s.prompt(ctx, gradebook.PromptNewGrade)
	if err != nil {
		return false, err
	}
	msg, err := gradebook.Update(ctx, s.store, name, grade)
	if err != nil {
		return false, err
	}
	s.println(msg)
	return false, nil
}

func displayGrades(ctx context.Context, s *Session) (bool, error) {
	for line, err := range gradebook.Display(ctx, s.store) {
		if err != nil {
			return false, err
		}
		s.println(line)
	}
	return false, nil
}

func exitProgram(_ context.Context, s *Session) (bool, error) {
	s.println(gradebook.MsgExiting)
	return true, nil
}
