package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rcliao/textrigger/internal/model"
	"github.com/rcliao/textrigger/internal/role"
)

func init() {
	roleCmd := &cobra.Command{
		Use:   "role",
		Short: "Manage personas",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List personas, the built-in default first",
		Run:   runRoleList,
	}

	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Add or replace a persona",
		Run:   runRoleAdd,
	}
	addCmd.Flags().String("id", "", "Persona id (required)")
	addCmd.Flags().String("name", "", "Display name (required)")
	addCmd.Flags().StringP("prompt", "p", "", "Persona prompt (required)")
	addCmd.Flags().StringP("trigger", "t", "", "Command token that selects this persona")
	addCmd.MarkFlagRequired("id")
	addCmd.MarkFlagRequired("name")
	addCmd.MarkFlagRequired("prompt")

	rmCmd := &cobra.Command{
		Use:   "rm [id]",
		Short: "Delete a persona",
		Args:  cobra.ExactArgs(1),
		Run:   runRoleRm,
	}

	useCmd := &cobra.Command{
		Use:   "use [id]",
		Short: "Select the active persona",
		Args:  cobra.ExactArgs(1),
		Run:   runRoleUse,
	}

	resolveCmd := &cobra.Command{
		Use:   "resolve [task]",
		Short: "Print the system message for a task under the active persona",
		Run:   runRoleResolve,
	}
	resolveCmd.Flags().String("role", "", "Resolve with this persona instead of the active one")

	roleCmd.AddCommand(listCmd, addCmd, rmCmd, useCmd, resolveCmd)
	RootCmd.AddCommand(roleCmd)
}

func runRoleList(cmd *cobra.Command, args []string) {
	s := mustSession(cmd)
	defer s.Close()

	roles := s.engine.Roles()
	if formatFlag == "text" {
		active := s.engine.ActiveRole()
		for _, r := range roles {
			mark := " "
			if r.ID == active {
				mark = "*"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %-12s %-16s %s\n", mark, r.ID, r.Name, r.Trigger)
		}
		return
	}
	emit(cmd.OutOrStdout(), roles)
}

func runRoleAdd(cmd *cobra.Command, args []string) {
	var r model.Role
	r.ID, _ = cmd.Flags().GetString("id")
	r.Name, _ = cmd.Flags().GetString("name")
	r.Prompt, _ = cmd.Flags().GetString("prompt")
	r.Trigger, _ = cmd.Flags().GetString("trigger")

	s := mustSession(cmd)
	defer s.Close()

	roles, err := role.Upsert(s.engine.Roles(), r)
	if err != nil {
		exitErr("add role", err)
	}
	if err := s.engine.SaveRoles(cmd.Context(), roles); err != nil {
		exitErr("save", err)
	}
	emit(cmd.OutOrStdout(), r)
}

func runRoleRm(cmd *cobra.Command, args []string) {
	s := mustSession(cmd)
	defer s.Close()

	roles, err := role.Remove(s.engine.Roles(), args[0])
	if err != nil {
		exitErr("rm role", err)
	}
	if err := s.engine.SaveRoles(cmd.Context(), roles); err != nil {
		exitErr("save", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), `{"ok":true,"id":%q}`+"\n", args[0])
}

func runRoleUse(cmd *cobra.Command, args []string) {
	s := mustSession(cmd)
	defer s.Close()

	if err := s.engine.SetActiveRole(cmd.Context(), args[0]); err != nil {
		exitErr("use role", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), `{"ok":true,"active":%q}`+"\n", args[0])
}

func runRoleResolve(cmd *cobra.Command, args []string) {
	override, _ := cmd.Flags().GetString("role")
	task := readText(args)

	s := mustSession(cmd)
	defer s.Close()

	var msg string
	var ok bool
	if override != "" {
		rolesJSON := role.SerializeCustom(s.engine.Roles())
		msg, ok = role.ResolveSystemMessage(override, rolesJSON, task)
	} else {
		msg, ok = s.engine.SystemMessage(task)
	}
	if !ok {
		exitErr("resolve", fmt.Errorf("no persona prompt and no task"))
	}
	fmt.Fprintln(cmd.OutOrStdout(), msg)
}
