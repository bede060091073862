// scripts/seed_employees.go
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/webwatchtech/telegram-attendance-bot/config"
	"github.com/webwatchtech/telegram-attendance-bot/database"
	"github.com/webwatchtech/telegram-attendance-bot/repositories"
)

// One-shot seeding: go run scripts/seed_employees.go "John Doe" "Jane Roe"
func main() {
	if len(os.Args) < 2 {
		fmt.Println("usage: seed_employees [name] [name] ...")
		os.Exit(1)
	}

	cfg := config.Load()
	database.Connect(cfg)

	employees := repositories.NewEmployeeRepository(database.DB)
	for _, name := range os.Args[1:] {
		emp, err := employees.Create(name)
		if err != nil {
			log.Fatalf("failed to insert %q: %v", name, err)
		}
		fmt.Printf("✅ added employee #%d: %s\n", emp.ID, emp.Name)
	}
}
