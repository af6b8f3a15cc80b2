// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package kbimport

import "github.com/jeranaias/jarvis-tui/internal/model"

// SeedEntries returns the sample entries used to populate an empty
// knowledge base.
func SeedEntries() []model.EntryInput {
	return []model.EntryInput{
		{
			Title:    "Python Virtual Environments",
			Content:  "Virtual environments are isolated Python environments that allow you to install packages for a specific project without affecting the system Python or other projects. Create one with 'python -m venv venv' and activate it with 'source venv/bin/activate' on Unix or 'venv\\Scripts\\activate' on Windows.",
			Category: model.CategoryTechnical,
			Tags:     []string{"python", "best-practices", "development"},
			Source:   "Python Docs",
		},
		{
			Title:    "REST API Best Practices",
			Content:  "RESTful APIs should use appropriate HTTP methods (GET for retrieval, POST for creation, PUT for updates, DELETE for removal), return proper status codes, use meaningful URLs, implement versioning, document endpoints, and follow consistent naming conventions.",
			Category: model.CategoryTechnical,
			Tags:     []string{"api", "rest", "best-practices"},
			Source:   "Web Development Guide",
		},
		{
			Title:    "Git Workflow",
			Content:  "A typical Git workflow involves creating a feature branch from main, making commits with meaningful messages, pushing to remote, creating a pull request for code review, and merging after approval. Always keep your main branch stable and deployable.",
			Category: model.CategoryTechnical,
			Tags:     []string{"git", "version-control", "collaboration"},
			Source:   "Git Documentation",
		},
		{
			Title:    "Database Indexing",
			Content:  "Database indexes improve query performance by creating data structures that allow faster lookup. Common indexes include primary keys, unique indexes, and composite indexes. However, indexes slow down write operations and consume disk space, so they should be used strategically.",
			Category: model.CategoryTechnical,
			Tags:     []string{"database", "performance", "optimization"},
			Source:   "Database Design",
		},
		{
			Title:    "Microservices Architecture",
			Content:  "Microservices decompose applications into small, independent services that communicate via APIs. Benefits include scalability and independent deployment, but challenges include complexity, network latency, and data consistency issues that require careful design patterns.",
			Category: model.CategoryTechnical,
			Tags:     []string{"architecture", "microservices", "design-patterns"},
			Source:   "Software Architecture",
		},
	}
}
