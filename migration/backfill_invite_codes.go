// migration/backfill_invite_codes.go
// One-off backfill for accounts created before invite codes moved from
// a database trigger to application-side generation.
//
// USAGE:
// Call BackfillInviteCodes(db) once from main.go or an admin endpoint,
// then remove the call.

package migration

import (
	"database/sql"
	"fmt"
	"log"

	"github.com/juntos-app/juntos-api/utils"
)

// BackfillInviteCodes assigns an invite code to every user missing one.
func BackfillInviteCodes(db *sql.DB) error {
	rows, err := db.Query(`SELECT id FROM users WHERE invite_code IS NULL OR invite_code = ''`)
	if err != nil {
		return fmt.Errorf("listing users without invite codes: %w", err)
	}
	defer rows.Close()

	var userIDs []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return err
		}
		userIDs = append(userIDs, id)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	if len(userIDs) == 0 {
		log.Println("No users need an invite code")
		return nil
	}

	migrated := 0
	for _, userID := range userIDs {
		// retry on the rare code collision
		var lastErr error
		for attempt := 0; attempt < 3; attempt++ {
			code, err := utils.GenerateInviteCode()
			if err != nil {
				return err
			}
			if _, lastErr = db.Exec(`UPDATE users SET invite_code = $1 WHERE id = $2`, code, userID); lastErr == nil {
				migrated++
				break
			}
		}
		if lastErr != nil {
			log.Printf("Failed to backfill invite code for user %s: %v", utils.MaskID(userID), lastErr)
		}
	}

	log.Printf("Backfilled invite codes for %d/%d users", migrated, len(userIDs))
	return nil
}
