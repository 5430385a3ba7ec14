package service

import "github.com/serogonpi/desarrollo-mobile-EAII/internal/models"

func ptr(s string) *string { return &s }

func sampleProjects() []models.Project {
	return []models.Project{
		{
			Title:        "React Web Portfolio",
			Description:  "Personal portfolio built with React, React Router and Bootstrap. Home, project gallery, blog and a responsive contact form.",
			Technologies: "React, JavaScript, React Router, Bootstrap, CSS",
			GithubURL:    ptr("https://github.com/your-user/portfolio-react"),
			Category:     models.CategoryWeb,
			IsFavorite:   true,
		},
		{
			Title:        "Mobile Portfolio App",
			Description:  "Native portfolio app with an MVVM architecture, local persistence and access to device resources such as camera and GPS.",
			Technologies: "Kotlin, Jetpack Compose, Room, MVVM, CameraX, Location Services",
			GithubURL:    ptr("https://github.com/your-user/portfolio-android"),
			Category:     models.CategoryMobile,
			IsFavorite:   true,
		},
		{
			Title:        "Task Management System",
			Description:  "Web application to organise tasks and projects with priorities, due dates, categories and notifications.",
			Technologies: "React, Node.js, Express, MongoDB, Material-UI",
			Category:     models.CategoryWeb,
		},
		{
			Title:        "E-commerce REST API",
			Description:  "RESTful API for an online store with JWT authentication, product catalogue, shopping cart and Stripe payments.",
			Technologies: "Node.js, Express, MongoDB, JWT, Stripe API",
			Category:     models.CategoryBackend,
		},
		{
			Title:        "Analytics Dashboard",
			Description:  "Admin dashboard with real-time charts, advanced filters and PDF/Excel report export.",
			Technologies: "React, Chart.js, Material-UI, Redux, Axios",
			Category:     models.CategoryWeb,
		},
		{
			Title:        "Weather App",
			Description:  "Mobile app showing current weather and extended forecasts from OpenWeather, with city search, favourites and alerts.",
			Technologies: "Kotlin, Retrofit, Coroutines, Material Design",
			Category:     models.CategoryMobile,
		},
	}
}

func samplePosts() []models.Post {
	compose := models.NewPost(
		"Introduction to Jetpack Compose",
		"Jetpack Compose is Android's modern toolkit for building native UI. Composable functions describe the screen "+
			"for the current state and the toolkit redraws it when the state changes, which means less code and fewer "+
			"layout files to keep in sync.",
		"Why Compose makes building modern Android interfaces simpler.",
		"Mobile Developer",
		"android, kotlin, jetpack-compose, ui, mobile",
	)
	compose.ViewCount = 125

	mvvm := models.NewPost(
		"MVVM Architecture on Android",
		"MVVM separates presentation from business logic. The model holds data and repositories, the view renders state "+
			"and forwards events, and the view model keeps UI state alive across configuration changes.",
		"How to structure an Android app with MVVM for cleaner, testable code.",
		"Mobile Developer",
		"android, mvvm, architecture, kotlin, best-practices",
	)
	mvvm.ViewCount = 89

	room := models.NewPost(
		"Room Database: Local Persistence on Android",
		"Room is an abstraction over SQLite made of entities, DAOs and a database class. Queries are checked at compile "+
			"time and results can be observed as streams that update when the tables change.",
		"A guide to storing data locally on Android with Room.",
		"Mobile Developer",
		"android, room, database, sqlite, kotlin",
	)
	room.ViewCount = 67

	return []models.Post{compose, mvvm, room}
}
