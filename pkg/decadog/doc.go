// Package decadog provides the sprint management client that composes the
// GitHub and ZenHub APIs for a single repository.
//
// Quick start
//
//	cli, err := decadog.New(ctx, &api.Config{
//	  GitHubToken: os.Getenv("GITHUB_TOKEN"),
//	  ZenHubToken: os.Getenv("ZENHUB_TOKEN"),
//	  Owner:       "tommilligan",
//	  Repo:        "decadog",
//	})
//	if err != nil { log.Fatal(err) }
//
//	repository, err := cli.GetRepository(ctx)
//	if err != nil { log.Fatal(err) }
//
//	sprint, err := cli.CreateSprint(ctx, repository, "4", start, due)
//
// Every operation is a single request, or two for CreateSprint, made
// synchronously. Nothing is cached or retried.
package decadog
