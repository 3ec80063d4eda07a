package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"syscall"

	"feedback-service/internal/admin"
	"feedback-service/internal/course"

	"golang.org/x/term"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type adminProvisioner interface {
	ProvisionAdmin(ctx context.Context, username, password string) (*admin.Admin, error)
}

type courseAdder interface {
	AddCourse(ctx context.Context, name, faculty string) (*course.Course, error)
}

type commandLine struct {
	admins  adminProvisioner
	courses courseAdder
	migrate func(ctx context.Context) error
	out     io.Writer
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  create-admin -username USERNAME [-password PASSWORD] - create an admin or reset its password")
	fmt.Fprintln(cli.out, "  add-course -name NAME -faculty FACULTY - add a course to the catalog")
	fmt.Fprintln(cli.out, "  migrate - create missing tables")
}

func (cli *commandLine) run(ctx context.Context, args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	createAdminCmd := flag.NewFlagSet("create-admin", flag.ContinueOnError)
	createAdminCmd.SetOutput(cli.out)
	createAdminUname := createAdminCmd.String("username", "", "The admin's username. The password is prompted unless -password is given.")
	createAdminPwd := createAdminCmd.String("password", "", "The admin's password (visible in shell history; prefer the prompt).")

	addCourseCmd := flag.NewFlagSet("add-course", flag.ContinueOnError)
	addCourseCmd.SetOutput(cli.out)
	addCourseName := addCourseCmd.String("name", "", "The course name.")
	addCourseFaculty := addCourseCmd.String("faculty", "", "The faculty offering the course.")

	switch args[1] {
	case "create-admin":
		if err := createAdminCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *createAdminUname == "" {
			createAdminCmd.Usage()
			return errHelp
		}
		pwd := *createAdminPwd
		if pwd == "" {
			fmt.Fprint(cli.out, "Enter password:")
			raw, err := readPasswordFunc(int(syscall.Stdin))
			fmt.Fprintln(cli.out)
			if err != nil {
				return err
			}
			pwd = string(raw)
		}
		if pwd == "" {
			createAdminCmd.Usage()
			return errHelp
		}
		a, err := cli.admins.ProvisionAdmin(ctx, *createAdminUname, pwd)
		if err != nil {
			return err
		}
		fmt.Fprintf(cli.out, "admin %q ready (id %d)\n", a.Username, a.ID)
		return nil

	case "add-course":
		if err := addCourseCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *addCourseName == "" || *addCourseFaculty == "" {
			addCourseCmd.Usage()
			return errHelp
		}
		c, err := cli.courses.AddCourse(ctx, *addCourseName, *addCourseFaculty)
		if err != nil {
			return err
		}
		fmt.Fprintf(cli.out, "course %q added (course_id %d)\n", c.Name, c.ID)
		return nil

	case "migrate":
		if err := cli.migrate(ctx); err != nil {
			return err
		}
		fmt.Fprintln(cli.out, "migrations applied")
		return nil

	default:
		cli.printUsage()
		return errHelp
	}
}
