package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/diug22/BeCreativIA/backend/pkg/logger"
)

// seed drives a running concept graph server the same way the frontend
// does: add a root concept, then expand it breadth-first with generated
// concepts for a fixed number of cycles.

type addConceptResponse struct {
	Status             string `json:"status"`
	ConceptID          int    `json:"concept_id"`
	SimilarConnections int    `json:"similar_connections"`
}

type generateResponse struct {
	RelatedConcepts []string `json:"related_concepts"`
}

func main() {
	serverURL := flag.String("server", "http://localhost:8000", "Concept graph API base URL")
	concept := flag.String("concept", "Creatividad", "Root concept to seed")
	cycles := flag.Int("cycles", 2, "Expansion cycles to run")
	reset := flag.Bool("reset", false, "Reset the graph before seeding")
	skipConfirm := flag.Bool("y", false, "Skip confirmation prompt")
	flag.Parse()

	// Initialize logger
	if err := logger.Init("development"); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Sync()

	log := logger.Get()

	s := &seeder{
		client:  &http.Client{Timeout: 60 * time.Second},
		baseURL: *serverURL,
	}

	if *reset {
		if !*skipConfirm {
			log.Warn("This will DELETE the current graph!")
			fmt.Print("Are you sure you want to continue? (yes/no): ")
			var response string
			fmt.Scanln(&response)
			if response != "yes" && response != "y" {
				log.Info("Aborted.")
				os.Exit(0)
			}
		}
		if err := s.resetGraph(); err != nil {
			log.Fatal("Failed to reset graph", zap.Error(err))
		}
		log.Info("Graph reset")
	}

	log.Info("Seeding concept graph",
		zap.String("server", *serverURL),
		zap.String("concept", *concept),
		zap.Int("cycles", *cycles))

	if _, err := s.addConcept(*concept, ""); err != nil {
		log.Fatal("Failed to add root concept", zap.Error(err))
	}

	frontier := []string{*concept}
	total := 1
	for cycle := 1; cycle <= *cycles; cycle++ {
		var next []string
		for _, parent := range frontier {
			related, err := s.generateConcepts(parent)
			if err != nil {
				log.Error("Generation failed, skipping concept",
					zap.String("concept", parent),
					zap.Error(err))
				continue
			}
			for _, r := range related {
				if _, err := s.addConcept(r, parent); err != nil {
					log.Error("Failed to add concept",
						zap.String("concept", r),
						zap.Error(err))
					continue
				}
				next = append(next, r)
				total++
			}
		}
		log.Info("Cycle complete",
			zap.Int("cycle", cycle),
			zap.Int("new_concepts", len(next)))
		frontier = next
	}

	log.Info("Seeding complete", zap.Int("concepts_added", total))
}

type seeder struct {
	client  *http.Client
	baseURL string
}

func (s *seeder) addConcept(concept, parent string) (*addConceptResponse, error) {
	params := url.Values{}
	params.Set("concept", concept)
	if parent != "" {
		params.Set("parent", parent)
	}

	resp, err := s.client.Post(s.baseURL+"/add-concept?"+params.Encode(), "application/json", nil)
	if err != nil {
		return nil, fmt.Errorf("add-concept request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("add-concept returned status %d", resp.StatusCode)
	}

	var result addConceptResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decoding add-concept response: %w", err)
	}
	return &result, nil
}

func (s *seeder) generateConcepts(concept string) ([]string, error) {
	body, err := json.Marshal(map[string]string{"concept": concept})
	if err != nil {
		return nil, fmt.Errorf("encoding generate-concepts request: %w", err)
	}

	resp, err := s.client.Post(s.baseURL+"/generate-concepts", "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("generate-concepts request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("generate-concepts returned status %d", resp.StatusCode)
	}

	var result generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decoding generate-concepts response: %w", err)
	}
	return result.RelatedConcepts, nil
}

func (s *seeder) resetGraph() error {
	req, err := http.NewRequest(http.MethodDelete, s.baseURL+"/reset-graph", nil)
	if err != nil {
		return err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("reset-graph request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("reset-graph returned status %d", resp.StatusCode)
	}
	return nil
}
