package shell

import (
	"context"
	"fmt"
	"strings"

	"github.com/kamctl/kamctl/internal/api"
	"github.com/kamctl/kamctl/internal/workflow"
)

// buildCommandHandlers creates the map of command handlers
func (s *Shell) buildCommandHandlers() map[string]commandHandler {
	return map[string]commandHandler{
		"help": {minArgs: 1, handler: func(ctx context.Context, parts []string) error {
			return s.showHelp()
		}},
		"?": {minArgs: 1, hidden: true, handler: func(ctx context.Context, parts []string) error {
			return s.showHelp()
		}},
		"exit": {minArgs: 1, handler: func(ctx context.Context, parts []string) error {
			return errExit
		}},
		"quit": {minArgs: 1, hidden: true, handler: func(ctx context.Context, parts []string) error {
			return errExit
		}},
		"whoami": {minArgs: 1, handler: s.handleWhoami},

		"accounts:ls":     {minArgs: 1, handler: s.handleAccountsList},
		"accounts:create": {minArgs: 2, usage: "usage: accounts:create {json}", handler: s.handleAccountsCreate},

		"sites:getall": {minArgs: 1, handler: s.handleSitesList},
		"sites:get":    {minArgs: 2, usage: "usage: sites:get <siteId>", handler: s.handleSitesGet},
		"sites:create": {minArgs: 2, usage: "usage: sites:create {json}", handler: s.handleSitesCreate},
		"sites:delete": {minArgs: 2, usage: "usage: sites:delete <siteId>", handler: s.handleSitesDelete},
		"sites:script": {minArgs: 2, usage: "usage: sites:script <siteId>", handler: s.handleSitesScript},
		"sites:dup-script": {
			minArgs: 3,
			usage:   "usage: sites:dup-script <source-code> <target-code>",
			handler: s.handleSitesDupScript,
		},
		"sites:dup-script-all": {
			minArgs: 2,
			usage:   "usage: sites:dup-script-all <source-code>",
			handler: s.handleSitesDupScriptAll,
		},

		"goals:getall":  {minArgs: 1, handler: s.handleGoalsList},
		"goals:get":     {minArgs: 2, usage: "usage: goals:get <goalId>", handler: s.handleGoalsGet},
		"goals:create":  {minArgs: 2, usage: "usage: goals:create {json}", handler: s.handleGoalsCreate},
		"goals:delete":  {minArgs: 2, usage: "usage: goals:delete <goalId>", handler: s.handleGoalsDelete},
		"goals:dup-all": {minArgs: 2, usage: "usage: goals:dup-all <goalId>", handler: s.handleGoalsDupAll},

		"seg:get": {minArgs: 2, usage: "usage: seg:get <segmentId>", handler: s.handleSegGet},
		"seg:duplicate": {
			minArgs: 3,
			usage:   "usage: seg:duplicate <segmentId> <site-code> [site-code...]",
			handler: s.handleSegDuplicate,
		},

		"cd:getall": {minArgs: 1, handler: s.handleCustomDataList},
		"cd:get":    {minArgs: 2, usage: "usage: cd:get <customDataId>", handler: s.handleCustomDataGet},
		"cd:create": {minArgs: 2, usage: "usage: cd:create {json}", handler: s.handleCustomDataCreate},
		"cd:delete": {minArgs: 2, usage: "usage: cd:delete <customDataId>", handler: s.handleCustomDataDelete},

		"xp:getall": {minArgs: 1, handler: s.handleExperimentsList},
		"xp:get":    {minArgs: 2, usage: "usage: xp:get <experimentId>", handler: s.handleExperimentsGet},
		"xp:create": {minArgs: 2, usage: "usage: xp:create {json}", handler: s.handleExperimentsCreate},
		"xp:delete": {minArgs: 2, usage: "usage: xp:delete <experimentId>", handler: s.handleExperimentsDelete},
		"xp:update-status": {
			minArgs: 3,
			usage:   "usage: xp:update-status <experimentId> <ACTIVE|PAUSED|STOPPED|DEACTIVATED>",
			handler: s.handleExperimentsUpdateStatus,
		},
		"xp:restart": {minArgs: 2, usage: "usage: xp:restart <experimentId>", handler: s.handleExperimentsRestart},
		"xp:restore": {
			minArgs: 3,
			usage:   "usage: xp:restore <siteId> <savedAt>",
			hidden:  true,
			handler: s.handleBackupsRestore,
		},

		"backups:ls":  {minArgs: 1, handler: s.handleBackupsList},
		"backups:get": {minArgs: 3, usage: "usage: backups:get <siteId> <savedAt>", handler: s.handleBackupsGet},
		"backups:restore": {
			minArgs: 3,
			usage:   "usage: backups:restore <siteId> <savedAt>",
			handler: s.handleBackupsRestore,
		},
	}
}

// showHelp displays available commands
func (s *Shell) showHelp() error {
	fmt.Println("Available commands:")
	fmt.Println("  help                                  - Show this help message")
	fmt.Println("  whoami                                - Show accounts visible to this client")
	fmt.Println("  accounts:ls                           - List accounts")
	fmt.Println("  accounts:create {json}                - Create an account")
	fmt.Println("  sites:getall                          - List sites")
	fmt.Println("  sites:get <siteId>                    - Show one site")
	fmt.Println("  sites:create {json}                   - Create a site")
	fmt.Println("  sites:delete <siteId>                 - Delete a site")
	fmt.Println("  sites:script <siteId>                 - Show a site's tracking script")
	fmt.Println("  sites:dup-script <src> <target>       - Copy a tracking script between sites (by code)")
	fmt.Println("  sites:dup-script-all <src>            - Copy a tracking script to all other sites")
	fmt.Println("  goals:getall                          - List goals")
	fmt.Println("  goals:get <goalId>                    - Show one goal")
	fmt.Println("  goals:create {json}                   - Create a goal")
	fmt.Println("  goals:delete <goalId>                 - Delete a goal")
	fmt.Println("  goals:dup-all <goalId>                - Copy a goal to all other sites")
	fmt.Println("  seg:get <segmentId>                   - Show one segment")
	fmt.Println("  seg:duplicate <segmentId> <codes...>  - Copy a segment to the named sites")
	fmt.Println("  cd:getall                             - List custom data definitions")
	fmt.Println("  cd:get <customDataId>                 - Show one custom data definition")
	fmt.Println("  cd:create {json}                      - Create a custom data definition")
	fmt.Println("  cd:delete <customDataId>              - Delete a custom data definition")
	fmt.Println("  xp:getall                             - List experiments")
	fmt.Println("  xp:get <experimentId>                 - Show one experiment")
	fmt.Println("  xp:create {json}                      - Create an experiment")
	fmt.Println("  xp:delete <experimentId>              - Delete an experiment")
	fmt.Println("  xp:update-status <experimentId> <st>  - Change an experiment's status")
	fmt.Println("  xp:restart <experimentId>             - Restart an experiment")
	fmt.Println("  backups:ls [siteId]                   - List tracking-script backups")
	fmt.Println("  backups:get <siteId> <savedAt>        - Show one backup")
	fmt.Println("  backups:restore <siteId> <savedAt>    - Restore a tracking script from a backup")
	fmt.Println("  exit                                  - Leave the shell")
	return nil
}

func (s *Shell) handleWhoami(ctx context.Context, _ []string) error {
	token, err := s.auth.Token(ctx)
	if err != nil {
		return err
	}
	accounts, err := s.gateway.ListAccounts(ctx, token)
	if err != nil {
		return err
	}
	if len(accounts) == 0 {
		fmt.Println("No accounts visible to this client.")
		return nil
	}

	fmt.Printf("Visible accounts (%d):\n", len(accounts))
	for i, a := range accounts {
		fmt.Printf("  %d. %s %s <%s>\n", i+1, a.FirstName, a.LastName, a.Email)
	}
	fmt.Println()
	return s.printJSON(accounts[0])
}

func (s *Shell) handleAccountsList(ctx context.Context, _ []string) error {
	token, err := s.auth.Token(ctx)
	if err != nil {
		return err
	}
	accounts, err := s.gateway.ListAccounts(ctx, token)
	if err != nil {
		return err
	}
	return s.printJSON(accounts)
}

func (s *Shell) handleAccountsCreate(ctx context.Context, parts []string) error {
	var req api.CreateAccountRequest
	if err := decodeJSONArg(parts[1], &req); err != nil {
		return err
	}
	token, err := s.auth.Token(ctx)
	if err != nil {
		return err
	}
	account, err := s.gateway.CreateAccount(ctx, token, req)
	if err != nil {
		return err
	}
	s.logger.Success("Created account %d", account.ID)
	return s.printJSON(account)
}

func (s *Shell) handleSitesList(ctx context.Context, _ []string) error {
	token, err := s.auth.Token(ctx)
	if err != nil {
		return err
	}
	sites, err := s.gateway.ListSites(ctx, token)
	if err != nil {
		return err
	}
	return s.printJSON(sites)
}

func (s *Shell) handleSitesGet(ctx context.Context, parts []string) error {
	id, err := parseID(parts[1])
	if err != nil {
		return err
	}
	token, err := s.auth.Token(ctx)
	if err != nil {
		return err
	}
	site, err := s.gateway.GetSite(ctx, token, id)
	if err != nil {
		return err
	}
	return s.printJSON(site)
}

func (s *Shell) handleSitesCreate(ctx context.Context, parts []string) error {
	var req api.CreateSiteRequest
	if err := decodeJSONArg(parts[1], &req); err != nil {
		return err
	}
	token, err := s.auth.Token(ctx)
	if err != nil {
		return err
	}
	site, err := s.gateway.CreateSite(ctx, token, req)
	if err != nil {
		return err
	}
	s.logger.Success("Created site %d (%s)", site.ID, site.Code)
	return s.printJSON(site)
}

func (s *Shell) handleSitesDelete(ctx context.Context, parts []string) error {
	id, err := parseID(parts[1])
	if err != nil {
		return err
	}
	token, err := s.auth.Token(ctx)
	if err != nil {
		return err
	}
	if err := s.gateway.DeleteSite(ctx, token, id); err != nil {
		return err
	}
	s.logger.Success("Deleted site %d", id)
	return nil
}

func (s *Shell) handleSitesScript(ctx context.Context, parts []string) error {
	id, err := parseID(parts[1])
	if err != nil {
		return err
	}
	token, err := s.auth.Token(ctx)
	if err != nil {
		return err
	}
	site, err := s.gateway.GetSite(ctx, token, id)
	if err != nil {
		return err
	}
	if site.TrackingScript == "" {
		fmt.Printf("Site %s has no tracking script.\n", site.Code)
		return nil
	}
	fmt.Println(site.TrackingScript)
	return nil
}

func (s *Shell) handleSitesDupScript(ctx context.Context, parts []string) error {
	token, err := s.auth.Token(ctx)
	if err != nil {
		return err
	}
	source, err := s.gateway.GetSiteByCode(ctx, token, parts[1])
	if err != nil {
		return err
	}
	target, err := s.gateway.GetSiteByCode(ctx, token, parts[2])
	if err != nil {
		return err
	}

	if _, warning := workflow.SnapshotBeforeUpdate(ctx, s.gateway, s.backups, token, target.ID, "dup-script"); warning != "" {
		s.logger.Warning("%s", warning)
	}
	if _, err := s.gateway.UpdateTrackingScript(ctx, token, target.ID, source.TrackingScript); err != nil {
		return err
	}
	s.logger.Success("Copied tracking script from %s to %s", source.Code, target.Code)
	return nil
}

func (s *Shell) handleSitesDupScriptAll(ctx context.Context, parts []string) error {
	token, err := s.auth.Token(ctx)
	if err != nil {
		return err
	}
	result, err := workflow.DuplicateTrackingScript(ctx, s.gateway, token, parts[1])
	if err != nil {
		return err
	}
	if result.Warning != "" {
		s.logger.Warning("%s", result.Warning)
	}
	s.logger.Success("Updated %d of %d sites", len(result.Updated), result.TotalTargets)
	return s.printJSON(result)
}

func (s *Shell) handleGoalsList(ctx context.Context, _ []string) error {
	token, err := s.auth.Token(ctx)
	if err != nil {
		return err
	}
	goals, err := s.gateway.ListGoals(ctx, token)
	if err != nil {
		return err
	}
	return s.printJSON(goals)
}

func (s *Shell) handleGoalsGet(ctx context.Context, parts []string) error {
	id, err := parseID(parts[1])
	if err != nil {
		return err
	}
	token, err := s.auth.Token(ctx)
	if err != nil {
		return err
	}
	goal, err := s.gateway.GetGoal(ctx, token, id)
	if err != nil {
		return err
	}
	return s.printJSON(goal)
}

func (s *Shell) handleGoalsCreate(ctx context.Context, parts []string) error {
	var req api.CreateGoalRequest
	if err := decodeJSONArg(parts[1], &req); err != nil {
		return err
	}
	token, err := s.auth.Token(ctx)
	if err != nil {
		return err
	}
	goal, err := s.gateway.CreateGoal(ctx, token, req)
	if err != nil {
		return err
	}
	s.logger.Success("Created goal %d", goal.ID)
	return s.printJSON(goal)
}

func (s *Shell) handleGoalsDelete(ctx context.Context, parts []string) error {
	id, err := parseID(parts[1])
	if err != nil {
		return err
	}
	token, err := s.auth.Token(ctx)
	if err != nil {
		return err
	}
	if err := s.gateway.DeleteGoal(ctx, token, id); err != nil {
		return err
	}
	s.logger.Success("Deleted goal %d", id)
	return nil
}

func (s *Shell) handleGoalsDupAll(ctx context.Context, parts []string) error {
	id, err := parseID(parts[1])
	if err != nil {
		return err
	}
	token, err := s.auth.Token(ctx)
	if err != nil {
		return err
	}
	result, err := workflow.DuplicateGoalToAllSites(ctx, s.gateway, token, id)
	if err != nil {
		return err
	}
	s.logger.Success("Duplicated goal to %d of %d sites", len(result.Successes), result.TotalTargets)
	return s.printJSON(result)
}

func (s *Shell) handleSegGet(ctx context.Context, parts []string) error {
	id, err := parseID(parts[1])
	if err != nil {
		return err
	}
	token, err := s.auth.Token(ctx)
	if err != nil {
		return err
	}
	segment, err := s.gateway.GetSegment(ctx, token, id)
	if err != nil {
		return err
	}
	return s.printJSON(segment)
}

func (s *Shell) handleSegDuplicate(ctx context.Context, parts []string) error {
	id, err := parseID(parts[1])
	if err != nil {
		return err
	}
	token, err := s.auth.Token(ctx)
	if err != nil {
		return err
	}
	result, err := workflow.DuplicateSegment(ctx, s.gateway, token, id, parts[2:])
	if err != nil {
		return err
	}
	s.logger.Success("Duplicated segment to %d of %d sites", len(result.Successes), result.TotalTargets)
	return s.printJSON(result)
}

func (s *Shell) handleCustomDataList(ctx context.Context, _ []string) error {
	token, err := s.auth.Token(ctx)
	if err != nil {
		return err
	}
	customData, err := s.gateway.ListCustomData(ctx, token)
	if err != nil {
		return err
	}
	return s.printJSON(customData)
}

func (s *Shell) handleCustomDataGet(ctx context.Context, parts []string) error {
	id, err := parseID(parts[1])
	if err != nil {
		return err
	}
	token, err := s.auth.Token(ctx)
	if err != nil {
		return err
	}
	customData, err := s.gateway.GetCustomData(ctx, token, id)
	if err != nil {
		return err
	}
	return s.printJSON(customData)
}

func (s *Shell) handleCustomDataCreate(ctx context.Context, parts []string) error {
	var req api.CreateCustomDataRequest
	if err := decodeJSONArg(parts[1], &req); err != nil {
		return err
	}
	token, err := s.auth.Token(ctx)
	if err != nil {
		return err
	}
	customData, err := s.gateway.CreateCustomData(ctx, token, req)
	if err != nil {
		return err
	}
	s.logger.Success("Created custom data %d", customData.ID)
	return s.printJSON(customData)
}

func (s *Shell) handleCustomDataDelete(ctx context.Context, parts []string) error {
	id, err := parseID(parts[1])
	if err != nil {
		return err
	}
	token, err := s.auth.Token(ctx)
	if err != nil {
		return err
	}
	if err := s.gateway.DeleteCustomData(ctx, token, id); err != nil {
		return err
	}
	s.logger.Success("Deleted custom data %d", id)
	return nil
}

func (s *Shell) handleExperimentsList(ctx context.Context, _ []string) error {
	token, err := s.auth.Token(ctx)
	if err != nil {
		return err
	}
	experiments, err := s.gateway.ListExperiments(ctx, token)
	if err != nil {
		return err
	}
	return s.printJSON(experiments)
}

func (s *Shell) handleExperimentsGet(ctx context.Context, parts []string) error {
	id, err := parseID(parts[1])
	if err != nil {
		return err
	}
	token, err := s.auth.Token(ctx)
	if err != nil {
		return err
	}
	experiment, err := s.gateway.GetExperiment(ctx, token, id)
	if err != nil {
		return err
	}
	return s.printJSON(experiment)
}

func (s *Shell) handleExperimentsCreate(ctx context.Context, parts []string) error {
	var req api.CreateExperimentRequest
	if err := decodeJSONArg(parts[1], &req); err != nil {
		return err
	}
	token, err := s.auth.Token(ctx)
	if err != nil {
		return err
	}
	experiment, err := s.gateway.CreateExperiment(ctx, token, req)
	if err != nil {
		return err
	}
	s.logger.Success("Created experiment %d", experiment.ID)
	return s.printJSON(experiment)
}

func (s *Shell) handleExperimentsDelete(ctx context.Context, parts []string) error {
	id, err := parseID(parts[1])
	if err != nil {
		return err
	}
	token, err := s.auth.Token(ctx)
	if err != nil {
		return err
	}
	if err := s.gateway.DeleteExperiment(ctx, token, id); err != nil {
		return err
	}
	s.logger.Success("Deleted experiment %d", id)
	return nil
}

func (s *Shell) handleExperimentsUpdateStatus(ctx context.Context, parts []string) error {
	id, err := parseID(parts[1])
	if err != nil {
		return err
	}
	status := strings.ToUpper(parts[2])
	token, err := s.auth.Token(ctx)
	if err != nil {
		return err
	}
	experiment, err := s.gateway.UpdateExperimentStatus(ctx, token, id, status)
	if err != nil {
		return err
	}
	s.logger.Success("Experiment %d is now %s", experiment.ID, experiment.Status)
	return s.printJSON(experiment)
}

func (s *Shell) handleExperimentsRestart(ctx context.Context, parts []string) error {
	id, err := parseID(parts[1])
	if err != nil {
		return err
	}
	token, err := s.auth.Token(ctx)
	if err != nil {
		return err
	}
	if err := s.gateway.RestartExperiment(ctx, token, id); err != nil {
		return err
	}
	s.logger.Success("Restarted experiment %d", id)
	return nil
}

func (s *Shell) handleBackupsList(ctx context.Context, parts []string) error {
	var siteID int
	if len(parts) > 1 {
		id, err := parseID(parts[1])
		if err != nil {
			return err
		}
		siteID = id
	}

	backups, err := s.backups.List(siteID)
	if err != nil {
		return err
	}
	if len(backups) == 0 {
		fmt.Println("No backups found.")
		return nil
	}

	fmt.Printf("Backups (%d), most recent first:\n", len(backups))
	for i, b := range backups {
		fmt.Printf("  %d. site %d (%s) saved %s", i+1, b.SiteID, b.SiteCode, b.SavedAt)
		if b.TriggeredBy != "" {
			fmt.Printf(" [%s]", b.TriggeredBy)
		}
		fmt.Println()
	}
	return nil
}

func (s *Shell) handleBackupsGet(ctx context.Context, parts []string) error {
	siteID, err := parseID(parts[1])
	if err != nil {
		return err
	}
	b, err := s.backups.Get(siteID, parts[2])
	if err != nil {
		return err
	}
	return s.printJSON(b)
}

func (s *Shell) handleBackupsRestore(ctx context.Context, parts []string) error {
	siteID, err := parseID(parts[1])
	if err != nil {
		return err
	}
	token, err := s.auth.Token(ctx)
	if err != nil {
		return err
	}
	result, err := workflow.RestoreTrackingScript(ctx, s.gateway, s.backups, token, siteID, parts[2])
	if err != nil {
		return err
	}
	if result.Warning != "" {
		s.logger.Warning("%s", result.Warning)
	}
	s.logger.Success("Restored tracking script for site %d from %s", siteID, parts[2])
	return s.printJSON(result)
}
