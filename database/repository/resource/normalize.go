// File: database/repository/resource/normalize.go
package resourceRepo

import (
	"fmt"
	"strings"
	"time"

	"chairside/models"

	"go.mongodb.org/mongo-driver/bson"
)

// Legacy resource records spell weekday keys four different ways. The raw
// document is collapsed into the canonical WeeklyAvailability here, at the
// storage boundary, so nothing downstream ever sees the drift. Shapes are
// tried in a fixed order and the first key present for a weekday wins:
//
//	1. title-case  "Monday"
//	2. lowercase   "monday"
//	3. short       "mon"
//	4. index       "1" (Sunday = 0)
func NormalizeWeekly(raw bson.M) models.WeeklyAvailability {
	weekly := models.WeeklyAvailability{}
	if len(raw) == 0 {
		return weekly
	}

	for day := time.Sunday; day <= time.Saturday; day++ {
		long := day.String()
		keys := []string{
			long,
			strings.ToLower(long),
			strings.ToLower(long[:3]),
			fmt.Sprintf("%d", int(day)),
		}
		for _, key := range keys {
			val, present := raw[key]
			if !present {
				continue
			}
			if win, ok := decodeWindow(val); ok {
				weekly[day] = win
			}
			break
		}
	}
	return weekly
}

func decodeWindow(val interface{}) (models.DayWindow, bool) {
	doc, ok := val.(bson.M)
	if !ok {
		// bson decodes nested documents as bson.M by default, but tolerate
		// the map form too.
		m, isMap := val.(map[string]interface{})
		if !isMap {
			return models.DayWindow{}, false
		}
		doc = bson.M(m)
	}

	if off, _ := doc["off"].(bool); off {
		return models.DayWindow{Off: true}, true
	}

	start, _ := doc["start"].(string)
	end, _ := doc["end"].(string)
	if start == "" || end == "" {
		return models.DayWindow{}, false
	}
	return models.DayWindow{Start: start, End: end}, true
}
