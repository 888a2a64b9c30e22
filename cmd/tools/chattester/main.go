// Command chattester runs conversation turns from the terminal and writes the
// synthesized audio to disk, which is handy for checking provider credentials.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/zhouzirui/persona-voice/backend/internal/app"
	"github.com/zhouzirui/persona-voice/backend/internal/config"
	"github.com/zhouzirui/persona-voice/backend/internal/model/language"
	"github.com/zhouzirui/persona-voice/backend/internal/model/persona"
	"github.com/zhouzirui/persona-voice/backend/internal/service/chat"
	"github.com/zhouzirui/persona-voice/backend/internal/service/voice"
	"github.com/zhouzirui/persona-voice/backend/pkg/log"
)

type options struct {
	mode     string
	lang     string
	gender   string
	age      string
	out      string
	greet    bool
	verbose  bool
	timeout  time.Duration
	textOnly bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "chattester [message...]",
		Short: "Send messages to a persona and save the spoken replies",
		Long: `Runs one conversation turn per argument against the configured LLM and TTS
providers. Each spoken reply is written to <out>-<n>.<format>.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, args)
		},
		SilenceUsage: true,
	}

	f := cmd.Flags()
	f.StringVar(&opts.mode, "mode", string(persona.General), "persona mode: coach, therapist, tutor, friend, general")
	f.StringVar(&opts.lang, "lang", string(language.Default), "conversation language code")
	f.StringVar(&opts.gender, "gender", string(persona.Female), "voice gender: female, male, general")
	f.StringVar(&opts.age, "age", "", "age variant for the friend persona: child, teen, adult")
	f.StringVar(&opts.out, "out", "reply", "output file prefix for synthesized audio")
	f.BoolVar(&opts.greet, "greet", false, "speak the persona greeting first")
	f.BoolVar(&opts.textOnly, "text-only", false, "skip speech synthesis")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")
	f.DurationVar(&opts.timeout, "timeout", 2*time.Minute, "overall timeout")
	return cmd
}

func run(cmd *cobra.Command, opts *options, args []string) error {
	if len(args) == 0 && !opts.greet {
		return fmt.Errorf("provide at least one message or --greet")
	}

	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	level := "warn"
	if opts.verbose {
		level = "debug"
	}
	if err := log.Init(level, "console", ""); err != nil {
		return err
	}
	defer log.Sync()

	ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
	defer cancel()

	out := cmd.OutOrStdout()
	var speakerOpt []chat.SessionOption
	if !opts.textOnly {
		player := &filePlayer{prefix: opts.out, report: func(path string) { fmt.Fprintf(out, "  audio → %s\n", path) }}
		voices := app.NewVoices(cfg.TTS, cfg.Local)
		synthOpts := append(voices.Options(), voice.WithNotifier(func(n string) { fmt.Fprintf(out, "  notice: %s\n", n) }))
		speakerOpt = append(speakerOpt, chat.WithSpeaker(voice.NewSynthesizer(player, synthOpts...)))
	}

	session := chat.NewSession(app.NewResponder(ctx, cfg.LLM), chat.Config{
		Mode:     persona.ParseMode(opts.mode),
		Language: language.Parse(opts.lang),
		Preferences: persona.Preferences{
			Gender: persona.ParseGender(opts.gender),
			Age:    persona.ParseAge(opts.age),
		},
	}, speakerOpt...)
	defer session.Close()

	if opts.greet {
		if msg, ok := session.Greet(ctx); ok {
			fmt.Fprintf(out, "%s> %s\n", msg.Mode, msg.Content)
		}
	}
	for _, text := range args {
		fmt.Fprintf(out, "you> %s\n", text)
		reply, err := session.SendMessage(ctx, text)
		if err != nil {
			return fmt.Errorf("send %q: %w", text, err)
		}
		fmt.Fprintf(out, "%s [%s]> %s\n", reply.Mode, reply.Language, strings.TrimSpace(reply.Content))
	}
	return nil
}

// filePlayer 把每段语音写入单独的文件。
type filePlayer struct {
	prefix string
	report func(path string)
	count  int
}

func (p *filePlayer) Play(_ context.Context, audio voice.Audio) error {
	p.count++
	path := fmt.Sprintf("%s-%d.%s", p.prefix, p.count, audio.Format)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if _, err := f.ReadFrom(audio.Stream); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	p.report(path)
	return nil
}
