package main

import "html/template"

// Experience is one entry on the Experiences page.
type Experience struct {
	Role     string
	Company  string
	URL      string
	Period   string
	Image    string
	ImageAlt string
	Float    string
	Body     template.HTML
}

// Project is one entry on the Projects page. At most one of Embed, Video or
// Image is shown.
type Project struct {
	Title string
	Repo  string
	Embed string
	Video string
	Image string
	Float string
	Body  template.HTML
}

var (
	AboutMe = `My name is Muntakim and I'm an Electrical Engineering undergraduate with an appetite for software development.
	I'm passionate about developing innovative technologies that integrate software and hardware. My experiences are in data science and embedded systems;
	I love working on projects that leverage the intersection of these fields!
	I've found that I thrive in environments that require first principles thinking, especially in the realm of big data. Whether working on satellite firmware or designing data-centric user interfaces,
	my goal is to bring robust and scalable solutions to intricate engineering challenges.`

	Languages = []string{"Python", "SQL", "C", "Golang", "Verilog", "ASM"}

	Experiences = []Experience{
		{
			Image:    "Muntakim_Headshot_2019.jpg",
			ImageAlt: "Muntakim Rahman : UBC Sauder School Headshot",
			Float:    "right",
			Body: `⚡ I'm currently pursuing a <strong>Bachelors in Electrical Engineering</strong> at the <strong><a href="https://ece.ubc.ca/undergraduates/programs/electrical-engineering-program/" class="external-links">University of British Columbia</a></strong>,
			with an expected graduation in May 2026. My academic background also includes a <strong><a href="https://extendedlearning.ubc.ca/programs-credentials/key-capabilities-data-science-certificate" class="external-links">Certificate in Data Science</a></strong>,
			where I enhanced my skills in data analytics and visualization, as well as some machine learning. ⚡`,
		},
		{
			Role:     "Software Applications Engineering Intern",
			Company:  "TESLA, Inc",
			URL:      "https://www.tesla.com/en_eu/megapack",
			Period:   "Jan 2023 - Jan 2024, May 2024 - Present",
			Image:    "Tesla_Interns_2023.jpg",
			ImageAlt: "Tesla Deer Creek Interns Fall 2023",
			Float:    "left",
			Body: `As part of the Industrial Energy Storage organization, I developed software automation and tools to analyze project performance metrics and generate reports. I helped standardize data management best practices in reporting
			key performance indicators to partner engineering teams and org leadership.`,
		},
		{
			Role:     "Product Coordinator Intern",
			Company:  "GEOTAB, Inc",
			URL:      "https://www.geotab.com/",
			Period:   "Jan 2022 - Jan 2023",
			Image:    "Geotab_Volleyball_2022.jpg",
			ImageAlt: "GEOTAB Interns 2022",
			Float:    "right",
			Body: `I coordinated UX research initiatives across Product Management teams to help develop vehicle telematics hardware and software solutions. I presented product insights, from both
			customer interviews and statistical analysis, to developers, product managers, and executives in informing roadmap decisions.`,
		},
		{
			Role:     "Firmware Developer",
			Company:  "UBC Orbit",
			URL:      "https://www.ubcorbit.com/",
			Period:   "Sept 2019 - Nov 2022",
			Image:    "UBC_Orbit_2019.jpg",
			ImageAlt: "UBC Orbit Satellite Design Team 2019",
			Float:    "left",
			Body: `I worked on the ALEASAT project as part of the Command and Data-Handling (CDH) subteam, developing the onboard-computer telemetry functionality intended to address
			system failure risks and ensure critical orbital tasks were performed with deterministic execution.`,
		},
		{
			Image:    "Optimus.jpg",
			ImageAlt: "Tesla Bot Optimus in Front of a Cybertruck",
			Float:    "right",
			Body:     `A potential market that excites me is the emerging field of humanoid and autonomous robots! 🤖 I am keen to closely follow new developments in this technological space!`,
		},
	}

	Projects = []Project{
		{
			Title: "Reflow Oven Controller",
			Repo:  "https://github.com/TZlindra/ELEC291Project1Code",
			Embed: "https://www.youtube.com/embed/Bzm737dduOw",
			Float: "left",
			Body: `An <span class="tech-highlight">8051 ASM</span> program that controls a reflow oven temperature profile for soldering <span class="tech-highlight">EFM8LB1</span> surface mount components.
			A <span class="tech-highlight">Tkinter</span> desktop application visualizes the temperature profile and sends reflow logs to a <span class="tech-highlight">Google Cloud Platform</span> server for storage and post-processing.`,
		},
		{
			Title: "Remote Controlled, Metal Detecting Robot",
			Repo:  "https://github.com/TZlindra/ELEC291Project2",
			Embed: "https://www.youtube.com/embed/mVCBSWdCpsY",
			Float: "right",
			Body: `A wirelessly controlled, battery operated robot which detects metal with principles of electromagnetic induction. The <span class="tech-highlight">C</span> firmware runs
			on <span class="tech-highlight">STM32L0</span> and <span class="tech-highlight">EFM8LB1</span> microcontrollers and was validated with <span class="tech-highlight">matplotlib</span> data visualization.`,
		},
		{
			Title: "STM32 Morse Code Translator",
			Repo:  "https://github.com/Dipto9999/STM32-Morse_Translator",
			Video: "https://user-images.githubusercontent.com/52113009/130340990-af157688-376e-429a-9239-4267415a930c.mp4",
			Float: "left",
			Body: `A <span class="tech-highlight">C</span> program which acquires a stream of ASCII characters from serial port via <span class="tech-highlight">UART</span>, and outputs the corresponding Morse code on
			an <span class="tech-highlight">STM32L4 Nucleo</span> board LED.`,
		},
		{
			Title: "Google PageRank Engine",
			Repo:  "https://github.com/Dipto9999/Google_PageRank",
			Video: "https://user-images.githubusercontent.com/52113009/135669850-cdea2f2d-a0b1-475c-9969-27d526ef226e.mp4",
			Float: "right",
			Body:  `A simplified implementation of Google's PageRank algorithm in <span class="tech-highlight">C</span>, which ranks web pages with a <span class="tech-highlight">MATLAB</span> engine based on hyperlink structure.`,
		},
		{
			Title: "Stock Portfolio App",
			Repo:  "https://github.com/Dipto9999/Stock_Portfolio_App",
			Video: "https://user-images.githubusercontent.com/52113009/197423041-074e3278-a808-49dd-a7a9-8ad1b2a625b8.mp4",
			Float: "left",
			Body:  `A <span class="tech-highlight">Tkinter</span> desktop application for monitoring and analyzing stock market trends to support investment decisions.`,
		},
		{
			Title: "Data Collection App",
			Repo:  "https://github.com/Dipto9999/Data_Collection_App",
			Image: "Data_Collection_App.jpeg",
			Float: "right",
			Body:  `A <span class="tech-highlight">Django</span> web application that collects user reported COVID-19 survey data in order to make economic decisions.`,
		},
	}

	// Dashboards are shown on the Interests page in this order.
	Dashboards = []string{"steam", "spotify", "goodreads"}
)
