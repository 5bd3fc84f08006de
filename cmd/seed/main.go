package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"lyro/internal/model"
	"lyro/internal/repository"
	"lyro/internal/service"
)

func main() {
	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		mongoURI = "mongodb://localhost:27017"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(ctx)

	db := client.Database("lyro")

	subjectRepo := repository.NewSubjectRepo(db)
	topicRepo := repository.NewTopicRepo(db)
	questionRepo := repository.NewQuestionRepo(db)
	testRepo := repository.NewNBTTestRepo(db)

	subjectID, err := subjectRepo.Create(ctx, &model.Subject{
		Name:  "Mathematics",
		Grade: 12,
	})
	if err != nil {
		log.Fatalf("Failed to seed subject: %v", err)
	}

	topics := []string{"Algebra", "3.1 Functions (Linear)", "Trigonometry"}
	for _, name := range topics {
		if _, err := topicRepo.Create(ctx, &model.Topic{
			Name:      name,
			Grade:     12,
			SubjectID: subjectID,
		}); err != nil {
			log.Fatalf("Failed to seed topic %q: %v", name, err)
		}
	}

	questions := []*model.Question{
		{
			QuestionNumber: "1a",
			Grade:          12,
			Subject:        "Mathematics",
			Paper:          "Paper 1",
			Topic:          "Algebra",
			QuestionText:   "Solve for x: x^2 - 5x + 6 = 0",
			Answer:         "x = 2 or x = 3",
			Timer:          120,
			Difficulty:     model.DifficultyMedium,
			AdditionalFields: []model.AdditionalField{
				{Label: "Hint", Value: "Factorise the quadratic"},
			},
		},
		{
			QuestionNumber: "1b",
			Grade:          12,
			Subject:        "Mathematics",
			Paper:          "Paper 1",
			Topic:          "Algebra",
			QuestionText:   "Hence, or otherwise, determine the sum of the roots.",
			Answer:         "5",
			Difficulty:     model.DifficultyEasy,
		},
		{
			QuestionNumber: "2",
			Grade:          12,
			Subject:        "Mathematics",
			Paper:          "Paper 2",
			Topic:          "3.1 Functions (Linear)",
			QuestionText:   "Sketch the graph of f(x) = 2x - 1 and state its gradient.",
			Answer:         "Gradient 2, y-intercept -1",
			Difficulty:     model.DifficultyEasy,
		},
	}
	for _, q := range questions {
		q.ApplyDefaults()
		q.CreatedAt = time.Now()
		if err := questionRepo.Create(ctx, q); err != nil {
			log.Fatalf("Failed to seed question %s: %v", q.QuestionNumber, err)
		}
	}

	nbtSvc := service.NewNBTService(testRepo)

	testID, err := nbtSvc.CreateTest(ctx, &model.NBTTest{
		Title:           "NBT Practice Test 1",
		Description:     "Mixed AQL practice under timed conditions",
		AvailableFrom:   time.Now(),
		AvailableUntil:  time.Now().AddDate(0, 3, 0),
		DurationMinutes: 60,
	})
	if err != nil {
		log.Fatalf("Failed to seed test: %v", err)
	}

	if _, err := nbtSvc.AppendQuestion(ctx, testID, service.NBTQuestionInput{
		QuestionContent:      []string{"Study the diagram below, then pick the expression equal to 2(x + 3).", "https://cdn.lyro.example/diagrams/q1.png"},
		QuestionContentTypes: []string{"text", "image"},
		Options: [][]string{
			{"2x + 6"},
			{"2x + 3"},
			{"x + 6"},
			{"2x + 5"},
		},
		CorrectOptionIndex: 0,
	}); err != nil {
		log.Fatalf("Failed to seed NBT question: %v", err)
	}

	fmt.Println("Seed complete:")
	fmt.Printf("  subject: %s\n", subjectID)
	fmt.Printf("  topics: %d, questions: %d\n", len(topics), len(questions))
	fmt.Printf("  test: %s\n", testID)
}
