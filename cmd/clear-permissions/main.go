package main

import (
	"context"
	"flag"
	"log"

	"crm-console/internal/config"
	"crm-console/internal/repository"

	"github.com/joho/godotenv"
)

func main() {
	session := flag.String("session", "", "session key whose permission mirror is removed")
	all := flag.Bool("all", false, "remove every permission mirror")
	flag.Parse()

	if (*session == "") == !*all {
		log.Fatal("❌ Use exactly one of -session <key> or -all")
	}

	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, relying on system env")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Invalid configuration: %v", err)
	}
	if cfg.Mirror.Driver == config.MirrorMemory {
		log.Fatal("❌ MIRROR_DRIVER=memory keeps nothing between runs; nothing to clear")
	}

	// 2. Open mirror
	ctx := context.Background()
	mirror, closeMirror, err := repository.OpenMirror(ctx, cfg)
	if err != nil {
		log.Fatalf("❌ Failed to open %s permission mirror: %v", cfg.Mirror.Driver, err)
	}
	defer closeMirror()

	// 3. Clear
	if *all {
		n, err := mirror.DeleteAll(ctx)
		if err != nil {
			log.Fatalf("❌ Failed to clear permission mirrors: %v", err)
		}
		log.Printf("✅ Removed %d permission mirrors from %s", n, cfg.Mirror.Driver)
		return
	}

	if err := mirror.Delete(ctx, *session); err != nil {
		log.Fatalf("❌ Failed to clear permission mirror for %s: %v", *session, err)
	}
	log.Printf("✅ Permission mirror for session %s removed", *session)
}
