package seed

import "github.com/spec-kit/portfolio-service/internal/domain"

// Offerings is the demo service catalog.
var Offerings = []domain.Offering{
	{
		Category:    "Hosting",
		Title:       "Hosting Básico",
		Description: "Hosting compartido para proyectos pequeños y sitios web personales.",
		Features: []string{
			"10 GB de almacenamiento",
			"100 GB de ancho de banda",
			"Certificado SSL gratuito",
			"Soporte por email",
			"Panel de control cPanel",
			"Backups semanales",
		},
		Price:  9.99,
		Period: domain.PeriodMonth,
	},
	{
		Category:    "Hosting",
		Title:       "Hosting con Dominio Custom",
		Description: "Hosting profesional con dominio personalizado incluido.",
		Features: []string{
			"50 GB de almacenamiento",
			"500 GB de ancho de banda",
			"Dominio .com/.es/.net incluido",
			"Certificado SSL gratuito",
			"Soporte prioritario 24/7",
			"Panel de control avanzado",
			"Backups diarios",
			"Email profesional ilimitado",
		},
		Price:   19.99,
		Period:  domain.PeriodMonth,
		Popular: true,
	},
	{
		Category:    "Cloud Storage",
		Title:       "Almacenamiento Cloud",
		Description: "Solución de almacenamiento en la nube segura y escalable.",
		Features: []string{
			"100 GB de almacenamiento",
			"Sincronización multiplataforma",
			"Acceso desde cualquier dispositivo",
			"Encriptación de extremo a extremo",
			"Compartición de archivos",
			"Versionado de archivos",
		},
		Price:  4.99,
		Period: domain.PeriodMonth,
	},
	{
		Category:    "Cloud Storage",
		Title:       "Almacenamiento Cloud Pro",
		Description: "Plan profesional con mayor capacidad y características avanzadas.",
		Features: []string{
			"1 TB de almacenamiento",
			"Sincronización ilimitada",
			"Acceso desde cualquier dispositivo",
			"Encriptación avanzada",
			"Compartición avanzada",
			"Versionado ilimitado",
			"Soporte prioritario",
		},
		Price:  12.99,
		Period: domain.PeriodMonth,
	},
	{
		Category:    "Clases",
		Title:       "Fundamentos de Programación - Java",
		Description: "Clases particulares para aprender los fundamentos de programación con Java.",
		Features: []string{
			"Clases personalizadas 1 a 1",
			"Material de estudio incluido",
			"Proyectos prácticos",
			"Seguimiento continuo",
			"Flexibilidad horaria",
			"Soporte entre sesiones",
		},
		Price:  25,
		Period: domain.PeriodHour,
	},
	{
		Category:    "Clases",
		Title:       "Fundamentos de Programación - Python",
		Description: "Clases particulares para aprender los fundamentos de programación con Python.",
		Features: []string{
			"Clases personalizadas 1 a 1",
			"Material de estudio incluido",
			"Proyectos prácticos",
			"Seguimiento continuo",
			"Flexibilidad horaria",
			"Soporte entre sesiones",
		},
		Price:  25,
		Period: domain.PeriodHour,
	},
	{
		Category:    "Clases",
		Title:       "Desarrollo Web",
		Description: "Clases particulares de desarrollo web completo (Frontend y Backend).",
		Features: []string{
			"Clases personalizadas 1 a 1",
			"HTML, CSS, JavaScript",
			"Frameworks modernos (React, Vue)",
			"Backend (Node.js, Express)",
			"Bases de datos",
			"Proyectos reales",
			"Portfolio incluido",
		},
		Price:   30,
		Period:  domain.PeriodHour,
		Popular: true,
	},
	{
		Category:    "Consultoría",
		Title:       "Consultoría de Páginas Web",
		Description: "Asesoramiento profesional para optimizar y mejorar tu presencia web.",
		Features: []string{
			"Análisis de tu sitio web",
			"Recomendaciones de mejora",
			"Optimización SEO",
			"Mejora de rendimiento",
			"Auditoría de seguridad",
			"Plan de acción personalizado",
			"Seguimiento mensual",
		},
		Price:  150,
		Period: domain.PeriodSession,
	},
}

const previewSite = "https://example.com"

func preview() *string {
	s := previewSite
	return &s
}

// Projects are the demo portfolio entries.
var Projects = []domain.Project{
	{
		Name:         "E-commerce Platform",
		Description:  "Plataforma completa de comercio electrónico con panel de administración.",
		Technologies: []string{"React", "Node.js", "MongoDB", "Stripe"},
		Image:        "https://images.unsplash.com/photo-1556742049-0cfed4f6a45d?w=800&h=600&fit=crop",
		PreviewURL:   preview(),
		DetailsURL:   "/projects/ecommerce",
	},
	{
		Name:         "Dashboard Analytics",
		Description:  "Dashboard interactivo para visualización de datos y métricas en tiempo real.",
		Technologies: []string{"React", "TypeScript", "D3.js", "Express"},
		Image:        "https://images.unsplash.com/photo-1551288049-bebda4e38f71?w=800&h=600&fit=crop",
		PreviewURL:   preview(),
		DetailsURL:   "/projects/dashboard",
	},
	{
		Name:         "Mobile App",
		Description:  "Aplicación móvil nativa con diseño moderno y funcionalidades avanzadas.",
		Technologies: []string{"React Native", "Firebase", "Redux"},
		Image:        "https://images.unsplash.com/photo-1512941937669-90a1b58e7e9c?w=800&h=600&fit=crop",
		PreviewURL:   preview(),
		DetailsURL:   "/projects/mobile-app",
	},
	{
		Name:         "SaaS Platform",
		Description:  "Plataforma de software como servicio con suscripciones y gestión de usuarios.",
		Technologies: []string{"Next.js", "PostgreSQL", "AWS", "Stripe"},
		Image:        "https://images.unsplash.com/photo-1460925895917-afdab827c52f?w=800&h=600&fit=crop",
		PreviewURL:   preview(),
		DetailsURL:   "/projects/saas",
	},
	{
		Name:         "Portfolio Website",
		Description:  "Sitio web personal minimalista para mostrar proyectos y habilidades.",
		Technologies: []string{"React", "Vite", "Tailwind CSS"},
		Image:        "https://images.unsplash.com/photo-1467232004584-a241de8bcf5d?w=800&h=600&fit=crop",
		PreviewURL:   preview(),
		DetailsURL:   "/projects/portfolio",
	},
	{
		Name:         "API RESTful",
		Description:  "API robusta y escalable con documentación completa y autenticación segura.",
		Technologies: []string{"Node.js", "Express", "MongoDB", "JWT"},
		Image:        "https://images.unsplash.com/photo-1558494949-ef010cbdcc31?w=800&h=600&fit=crop",
		PreviewURL:   preview(),
		DetailsURL:   "/projects/api",
	},
}
