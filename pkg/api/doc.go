// Package api provides types, interfaces, and helpers shared by the decadog
// GitHub and ZenHub clients.
//
// # Overview
//
// The api package defines the domain payloads (Issue, Milestone, Board,
// Pipeline, ...), the client interfaces implemented by internal/client, and
// the error taxonomy every request resolves to. Most consumers construct an
// orchestration client with decadog.New and work with the types defined here.
//
//	cli, err := decadog.New(ctx, &api.Config{
//	  GitHubToken: os.Getenv("GITHUB_TOKEN"),
//	  ZenHubToken: os.Getenv("ZENHUB_TOKEN"),
//	  Owner:       "tommilligan",
//	  Repo:        "decadog",
//	})
//	if err != nil { log.Fatal(err) }
//
// # Errors
//
// Every failed request returns exactly one of ConfigurationError,
// TransportError, DeserializationError, ClientError or
// UnexpectedStatusError, possibly wrapped with context. Use errors.As or the
// Is* helpers to branch on them:
//
//	issue, err := cli.GetIssue(ctx, 42)
//	if api.IsNotFound(err) {
//	  // ...
//	}
//
// # Update payloads
//
// IssueUpdate and MilestoneUpdate fields are Optional values. An unset field
// is omitted from the request, Set sends a value and Clear sends an explicit
// null, which GitHub interprets as "remove".
//
//	update := &api.IssueUpdate{Milestone: api.Clear[int]()}
//
// # Search
//
// Searches return a SearchSequence that fetches pages on demand:
//
//	seq := cli.SearchIssues(ctx, api.NewSearchQueryBuilder().State(api.StateOpen))
//	for issue, err := range seq.Items() {
//	  if err != nil { return err }
//	  fmt.Println(issue)
//	}
//	if seq.Incomplete() {
//	  // the backend truncated at least one page
//	}
package api
