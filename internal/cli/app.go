package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"task-tracker/internal/auth"
	"task-tracker/internal/registry"
	"task-tracker/internal/report"
)

// Options controls construction of an App.
type Options struct {
	// ExportDir receives files written by the export command.
	ExportDir string
}

// App is the numbered-menu front end. It parses every input line into typed
// arguments before calling the registry and prints the outcome.
type App struct {
	reg       *registry.Registry
	auth      auth.Authenticator
	in        *prompter
	out       io.Writer
	exportDir string
}

// New wires an App to a registry, an authenticator and a terminal.
func New(reg *registry.Registry, authn auth.Authenticator, in io.Reader, out io.Writer, opts Options) *App {
	dir := opts.ExportDir
	if dir == "" {
		dir = "."
	}
	return &App{
		reg:       reg,
		auth:      authn,
		in:        &prompter{scanner: bufio.NewScanner(in), out: out},
		out:       out,
		exportDir: dir,
	}
}

// Run shows the welcome menu until the user exits or input ends.
func (a *App) Run() error {
	for {
		fmt.Fprintln(a.out, "Welcome! Please choose an option:")
		fmt.Fprintln(a.out, "1. Register an account")
		fmt.Fprintln(a.out, "2. Login")
		fmt.Fprintln(a.out, "3. Exit")

		choice, err := a.in.line("Enter your choice: ")
		if err != nil {
			return quiet(err)
		}

		switch strings.TrimSpace(choice) {
		case "1":
			err = a.register()
		case "2":
			err = a.login()
		case "3":
			return nil
		default:
			fmt.Fprintln(a.out, "Unknown option.")
		}
		if err != nil {
			return quiet(err)
		}
	}
}

func (a *App) register() error {
	username, err := a.in.line("Enter a username: ")
	if err != nil {
		return err
	}
	password, err := a.in.line("Enter a password: ")
	if err != nil {
		return err
	}
	if a.auth.Register(username, password) {
		fmt.Fprintf(a.out, "User %s registered successfully\n", username)
	} else {
		fmt.Fprintln(a.out, "Username is taken")
	}
	return nil
}

func (a *App) login() error {
	username, err := a.in.line("Enter your username: ")
	if err != nil {
		return err
	}
	password, err := a.in.line("Enter your password: ")
	if err != nil {
		return err
	}
	session, ok := a.auth.Login(username, password)
	if !ok {
		fmt.Fprintln(a.out, "Invalid username or password.")
		return nil
	}
	fmt.Fprintf(a.out, "Welcome, %s!\n", session.Username)
	defer a.auth.Logout(session.Token)
	return a.sessionMenu(session.Token)
}

func (a *App) sessionMenu(token string) error {
	commands := map[string]func() error{
		"1": a.viewTasks,
		"2": a.createTask,
		"3": a.editTask,
		"4": a.deleteTask,
		"5": a.createProject,
		"6": a.editProject,
		"7": a.deleteProject,
		"8": a.exportTasks,
	}
	for {
		fmt.Fprintln(a.out, "Options:")
		fmt.Fprintln(a.out, "1. View tasks")
		fmt.Fprintln(a.out, "2. Create task")
		fmt.Fprintln(a.out, "3. Edit task")
		fmt.Fprintln(a.out, "4. Delete task")
		fmt.Fprintln(a.out, "5. Create project")
		fmt.Fprintln(a.out, "6. Edit project")
		fmt.Fprintln(a.out, "7. Delete project")
		fmt.Fprintln(a.out, "8. Export tasks")
		fmt.Fprintln(a.out, "9. Logout")

		command, err := a.in.line("Enter your command: ")
		if err != nil {
			return err
		}
		command = strings.TrimSpace(command)
		if command == "9" {
			fmt.Fprintln(a.out, "Logged out.")
			return nil
		}
		run, ok := commands[command]
		if !ok {
			fmt.Fprintln(a.out, "Unknown command.")
			continue
		}
		if _, err := a.auth.Validate(token); err != nil {
			fmt.Fprintln(a.out, "Your session has expired. Please log in again.")
			return nil
		}
		if err := run(); err != nil {
			return err
		}
	}
}

func (a *App) viewTasks() error {
	groups := a.reg.ViewTasks()
	if len(groups) == 0 {
		fmt.Fprintln(a.out, "No projects yet.")
		return nil
	}
	for _, g := range groups {
		fmt.Fprintf(a.out, "%s:\n", g.Project.Name)
		if len(g.Tasks) == 0 {
			fmt.Fprintln(a.out, "  (no tasks)")
		}
		for _, t := range g.Tasks {
			fmt.Fprintf(a.out, "  - Task ID: %d: %s\n", t.ID, t.Name)
		}
	}
	return nil
}

// readTask prompts for every task field. All answers are consumed before the priority
// is parsed, so a bad number never leaves later answers to be read as menu commands.
// ok is false if the priority could not be parsed.
func (a *App) readTask() (in registry.TaskInput, ok bool, err error) {
	priority, err := a.in.line("Enter priority (1 to 10): ")
	if err != nil {
		return in, false, err
	}
	if in.Name, err = a.in.line("Enter task name: "); err != nil {
		return in, false, err
	}
	if in.Description, err = a.in.line("Enter task description: "); err != nil {
		return in, false, err
	}
	assignees, err := a.in.line("Enter assignees (comma-separated list): ")
	if err != nil {
		return in, false, err
	}
	in.Assignees = ParseAssignees(assignees)
	project, err := a.in.line("Enter project name: ")
	if err != nil {
		return in, false, err
	}
	in.Project = strings.TrimSpace(project)
	deadline, err := a.in.line("Enter deadline (YYYY-MM-DD): ")
	if err != nil {
		return in, false, err
	}
	in.Deadline = strings.TrimSpace(deadline)
	in.Priority, ok = a.in.parseNumber(priority)
	return in, ok, nil
}

func (a *App) createTask() error {
	in, ok, err := a.readTask()
	if err != nil || !ok {
		return err
	}
	id, err := a.reg.CreateTask(in)
	if err != nil {
		fmt.Fprintln(a.out, describe(err))
		return nil
	}
	fmt.Fprintf(a.out, "Task created with ID %d.\n", id)
	return nil
}

func (a *App) editTask() error {
	id, ok, err := a.in.number("Enter the ID of the task you want to edit: ")
	if err != nil || !ok {
		return err
	}
	if _, err := a.reg.GetTask(id); err != nil {
		fmt.Fprintln(a.out, describe(err))
		return nil
	}
	fmt.Fprintln(a.out, "Enter new details for the task:")
	in, ok, err := a.readTask()
	if err != nil || !ok {
		return err
	}
	if err := a.reg.EditTask(id, in); err != nil {
		fmt.Fprintln(a.out, describe(err))
		return nil
	}
	fmt.Fprintf(a.out, "Task with ID %d edited successfully.\n", id)
	return nil
}

func (a *App) deleteTask() error {
	id, ok, err := a.in.number("Enter the ID of the task you want to delete: ")
	if err != nil || !ok {
		return err
	}
	if err := a.reg.DeleteTask(id); err != nil {
		fmt.Fprintln(a.out, describe(err))
		return nil
	}
	fmt.Fprintf(a.out, "Task with ID %d deleted successfully.\n", id)
	return nil
}

func (a *App) createProject() error {
	name, err := a.in.line("Enter project name: ")
	if err != nil {
		return err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		fmt.Fprintln(a.out, "Project name must not be empty.")
		return nil
	}
	description, err := a.in.line("Enter project description: ")
	if err != nil {
		return err
	}
	if err := a.reg.CreateProject(name, description); err != nil {
		fmt.Fprintln(a.out, describe(err))
		return nil
	}
	fmt.Fprintf(a.out, "Project '%s' created successfully.\n", name)
	return nil
}

func (a *App) editProject() error {
	name, err := a.in.line("Enter the name of the project you want to edit: ")
	if err != nil {
		return err
	}
	name = strings.TrimSpace(name)
	if !a.reg.ProjectExists(name) {
		fmt.Fprintf(a.out, "Project '%s' does not exist.\n", name)
		return nil
	}
	description, err := a.in.line("Enter the new description: ")
	if err != nil {
		return err
	}
	if err := a.reg.EditProject(name, description); err != nil {
		fmt.Fprintln(a.out, describe(err))
		return nil
	}
	fmt.Fprintf(a.out, "Project '%s' edited successfully.\n", name)
	return nil
}

func (a *App) deleteProject() error {
	name, err := a.in.line("Enter the name of the project you want to delete: ")
	if err != nil {
		return err
	}
	name = strings.TrimSpace(name)
	if !a.reg.ProjectExists(name) {
		fmt.Fprintf(a.out, "Project '%s' does not exist.\n", name)
		return nil
	}
	sure, err := a.in.confirm(fmt.Sprintf("Are you sure you want to delete project '%s'?", name))
	if err != nil {
		return err
	}
	if !sure {
		fmt.Fprintf(a.out, "Deletion of project '%s' cancelled.\n", name)
		return nil
	}

	err = a.reg.DeleteProject(name, false)
	var herr *registry.HasDependentsError
	if errors.As(err, &herr) {
		fmt.Fprintln(a.out, describe(err))
		cascade, cerr := a.in.confirm("Delete the project together with these tasks?")
		if cerr != nil {
			return cerr
		}
		if !cascade {
			fmt.Fprintf(a.out, "Deletion of project '%s' cancelled.\n", name)
			return nil
		}
		err = a.reg.DeleteProject(name, true)
	}
	if err != nil {
		fmt.Fprintln(a.out, describe(err))
		return nil
	}
	fmt.Fprintf(a.out, "Project '%s' deleted successfully.\n", name)
	return nil
}

func (a *App) exportTasks() error {
	format, err := a.in.line(fmt.Sprintf("Enter export format (%s): ", strings.Join(report.Formats, "/")))
	if err != nil {
		return err
	}
	format = strings.ToLower(strings.TrimSpace(format))
	data, err := report.Export(a.reg, format)
	if err != nil {
		fmt.Fprintln(a.out, "Error: "+err.Error())
		return nil
	}
	path := filepath.Join(a.exportDir, "tasks."+format)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		fmt.Fprintln(a.out, "Error: "+err.Error())
		return nil
	}
	fmt.Fprintf(a.out, "Exported tasks to %s\n", path)
	return nil
}

// quiet treats running out of input as a normal exit.
func quiet(err error) error {
	if errors.Is(err, errQuit) {
		return nil
	}
	return err
}
