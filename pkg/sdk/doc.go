// Package matchdex provides an embedded Go client for the matchdex
// candidate-to-requirement matching engine, backed by Valkey or Redis for
// profile storage and embedding caching.
//
// The client wires the matching engine directly over the database, without
// the HTTP layer:
//
//	client, _ := matchdex.New(ctx,
//	    matchdex.WithValkey("localhost:6379", ""),
//	    matchdex.WithOpenAI(apiKey, "", "text-embedding-3-small", 1536),
//	)
//	defer client.Close()
//
//	res, _ := client.Match(ctx, matchdex.MatchRequest{
//	    Requirement: matchdex.ProfileRef{Inline: &matchdex.ProfileInput{
//	        Skills:   []string{"Go", "PostgreSQL"},
//	        JobTitle: "Backend Engineer",
//	    }},
//	    Candidate: matchdex.ProfileRef{ID: "cand-42"},
//	})
//	fmt.Println(res.OverallScore, res.Explanation)
//
// Profiles can be vectorized once and stored under an ID, then referenced
// by ID in later Match and Rank calls:
//
//	client.Profiles().Upsert(ctx, "cand-42", matchdex.ProfileInput{...})
//	ranked, _ := client.Rank(ctx, matchdex.RankRequest{
//	    Requirement: matchdex.ProfileRef{ID: "req-1"},
//	    Candidates:  []matchdex.RankCandidate{{ID: "cand-42"}, {ID: "cand-7"}},
//	})
//
// Matching stored, already-vectorized profiles needs no embedding provider;
// inline profiles require one (WithOpenAI or WithEmbedder).
package matchdex
