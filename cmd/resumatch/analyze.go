package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"resume-match/internal/domain/extraction"
	"resume-match/internal/domain/job"
	"resume-match/internal/domain/matching"
	"resume-match/internal/domain/resume"

	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse <resume.txt|->",
	Short: "Extract skills, education, contact info and experience from a text resume",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := readInput(cmd, args[0])
		if err != nil {
			return err
		}
		return printJSON(cmd, extraction.ParseText(string(text)))
	},
}

var matchCmd = &cobra.Command{
	Use:   "match <resume.txt|->",
	Short: "Score a resume against one job posting",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := loadResume(cmd, args[0])
		if err != nil {
			return err
		}
		path, _ := cmd.Flags().GetString("job")
		if path == "" {
			return errors.New("--job is required")
		}
		raw, err := readInput(cmd, path)
		if err != nil {
			return err
		}
		var p job.Posting
		if err := json.Unmarshal(raw, &p); err != nil {
			return fmt.Errorf("decode job: %w", err)
		}
		p.ExperienceLevel = p.ExperienceLevel.OrDefault()

		return printJSON(cmd, matching.NewEngine(nil).MatchResumeToJob(r, p))
	},
}

var rankCmd = &cobra.Command{
	Use:   "rank <resume.txt|->",
	Short: "Rank job postings for a resume (the sample catalogue when --jobs is omitted)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := loadResume(cmd, args[0])
		if err != nil {
			return err
		}

		jobs := job.Samples(time.Now().UTC())
		if path, _ := cmd.Flags().GetString("jobs"); path != "" {
			raw, err := readInput(cmd, path)
			if err != nil {
				return err
			}
			jobs = nil
			if err := json.Unmarshal(raw, &jobs); err != nil {
				return fmt.Errorf("decode jobs: %w", err)
			}
			for i := range jobs {
				jobs[i].ExperienceLevel = jobs[i].ExperienceLevel.OrDefault()
			}
		}

		ranked := matching.NewEngine(nil).RankJobsForResume(r, jobs)
		if limit, _ := cmd.Flags().GetInt("limit"); limit > 0 && limit < len(ranked) {
			ranked = ranked[:limit]
		}
		return printJSON(cmd, ranked)
	},
}

func init() {
	matchCmd.Flags().String("job", "", "job posting JSON file")
	rankCmd.Flags().String("jobs", "", "JSON array of job postings")
	rankCmd.Flags().IntP("limit", "n", 0, "show only the top N postings")

	rootCmd.AddCommand(parseCmd, matchCmd, rankCmd)
}

func loadResume(cmd *cobra.Command, path string) (resume.Resume, error) {
	raw, err := readInput(cmd, path)
	if err != nil {
		return resume.Resume{}, err
	}
	text := string(raw)
	return extraction.ParseText(text).Resume(text), nil
}
