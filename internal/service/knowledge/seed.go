package knowledge

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/mamadbah2/livestockcare/internal/domain/models"
	"github.com/mamadbah2/livestockcare/internal/repository"
	"github.com/mamadbah2/livestockcare/internal/service/audit"
)

// SeedResult reports what SeedKnowledge inserted.
type SeedResult struct {
	Message string `json:"message"`
	Entries int    `json:"entries"`
}

func bounds(lo, hi float64) (*float64, *float64) { return &lo, &hi }

func bloodRange(species models.Species, testType, unit string, low, high float64, up, down, actions []string) models.ReferenceInput {
	lo, hi := bounds(low, high)
	return models.ReferenceInput{
		TestCategory: models.TestBlood,
		TestType:     testType,
		Species:      species,
		ReferenceData: models.ReferenceData{
			NormalMin:        lo,
			NormalMax:        hi,
			Unit:             unit,
			IncreaseCauses:   up,
			DecreaseCauses:   down,
			SuggestedActions: actions,
		},
	}
}

func seedEntries() []models.ReferenceInput {
	var out []models.ReferenceInput
	for _, sp := range []models.Species{models.SpeciesCattle, models.SpeciesBuffalo} {
		out = append(out,
			bloodRange(sp, "Hemoglobin", "g/dL", 8, 15,
				[]string{"Dehydration", "Polycythemia"},
				[]string{"Anemia", "Blood loss", "Parasitic infestation", "Nutritional deficiency"},
				[]string{"Check hydration status", "Screen for haemoparasites", "Consider iron and mineral supplementation"}),
			bloodRange(sp, "PCV", "%", 24, 46,
				[]string{"Dehydration", "Shock"},
				[]string{"Anemia", "Haemoparasitic disease", "Chronic infection"},
				[]string{"Correlate with hemoglobin", "Examine blood smear"}),
			bloodRange(sp, "RBC", "million/µL", 5, 10,
				[]string{"Dehydration"},
				[]string{"Anemia", "Babesiosis", "Theileriosis"},
				[]string{"Examine blood smear for haemoparasites"}),
			bloodRange(sp, "WBC", "thousand/µL", 4, 12,
				[]string{"Bacterial infection", "Inflammation", "Stress"},
				[]string{"Viral infection", "Bone marrow suppression", "Severe sepsis"},
				[]string{"Perform differential count", "Look for focus of infection"}),
			bloodRange(sp, "Platelets", "thousand/µL", 100, 800,
				[]string{"Inflammation", "Iron deficiency"},
				[]string{"Bleeding disorder", "Bracken fern poisoning", "Sepsis"},
				[]string{"Check for petechiae and bleeding", "Repeat count to rule out clumping"}),
		)
	}
	out = append(out,
		bloodRange(models.SpeciesDog, "Hemoglobin", "g/dL", 12, 18,
			[]string{"Dehydration"},
			[]string{"Anemia", "Ehrlichiosis", "Blood loss"},
			[]string{"Screen for tick-borne disease", "Check for blood loss"}),
		bloodRange(models.SpeciesDog, "PCV", "%", 37, 55,
			[]string{"Dehydration"},
			[]string{"Anemia", "Babesiosis"},
			[]string{"Examine blood smear"}),
		bloodRange(models.SpeciesDog, "WBC", "thousand/µL", 6, 17,
			[]string{"Bacterial infection", "Pyometra", "Stress"},
			[]string{"Parvovirus infection", "Distemper", "Bone marrow suppression"},
			[]string{"Perform differential count"}),
		models.ReferenceInput{
			TestCategory: models.TestBlood,
			TestType:     "Brucellosis RBPT",
			Species:      models.SpeciesCattle,
			ReferenceData: models.ReferenceData{
				Unit:             "result",
				IncreaseCauses:   []string{"Brucellosis infection"},
				DecreaseCauses:   []string{},
				SpecialSymptoms:  []string{"Abortion in last trimester", "Retained placenta", "Orchitis", "Hygroma"},
				SuggestedActions: []string{"Isolate the animal", "Confirm with ELISA", "Report to the District Veterinary Officer"},
				Notes:            "Zoonotic. Handle samples with full PPE.",
			},
		},
	)
	return out
}

// SeedKnowledge inserts the standard published reference ranges. It is a no-op
// when the knowledge center already has entries.
func (s *Service) SeedKnowledge(ctx context.Context, actor models.Principal) (*SeedResult, error) {
	n, err := s.store.Count(ctx, repository.CollKnowledge, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("count knowledge entries: %w", err)
	}
	if n > 0 {
		return &SeedResult{Message: "Data already seeded", Entries: int(n)}, nil
	}

	now := s.now().UTC()
	entries := seedEntries()
	for _, in := range entries {
		entry := models.ReferenceRange{
			ID:            uuid.NewString(),
			TestCategory:  in.TestCategory,
			TestType:      in.TestType,
			Species:       in.Species,
			ReferenceData: normalize(in.ReferenceData),
			Version:       1,
			Status:        models.KnowledgePublished,
			CreatedBy:     actor.ID,
			CreatedAt:     now,
			UpdatedAt:     now,
			PublishedAt:   &now,
		}
		if err := s.store.Insert(ctx, repository.CollKnowledge, entry); err != nil {
			return nil, fmt.Errorf("seed %s/%s: %w", in.Species, in.TestType, err)
		}
	}

	result := &SeedResult{Message: "Knowledge data seeded successfully", Entries: len(entries)}
	err = s.recorder.Record(ctx, actor, audit.Entry{
		Action:     models.ActionDataSeed,
		TargetType: targetKnowledge,
		After:      result,
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("knowledge center seeded", zap.Int("entries", len(entries)))
	return result, nil
}
