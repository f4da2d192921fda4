package deployments

//nolint:gochecknoglobals //static catalog
var catalog = []Type{
	{
		ID:            "nodejs_nginx",
		Name:          "Node.js + Nginx",
		Description:   "Node.js application served by Nginx reverse proxy",
		Requirements:  []string{"Node.js", "npm", "Nginx"},
		SetupScript:   "nodejs-nginx-setup.sh",
		RestartScript: "nodejs-nginx-restart.sh",
		Config:        map[string]any{"port": 3000, "processManager": "pm2"},
	},
	{
		ID:            "static_apache",
		Name:          "Static Site + Apache",
		Description:   "HTML/CSS/JS served by Apache HTTP Server",
		Requirements:  []string{"Apache2"},
		SetupScript:   "static-apache-setup.sh",
		RestartScript: "static-apache-restart.sh",
		Config:        map[string]any{"documentRoot": "/var/www/html"},
	},
	{
		ID:            "nodejs_pm2",
		Name:          "Node.js + PM2",
		Description:   "Node.js application with PM2 process manager",
		Requirements:  []string{"Node.js", "npm", "PM2"},
		SetupScript:   "nodejs-pm2-setup.sh",
		RestartScript: "nodejs-pm2-restart.sh",
		Config:        map[string]any{"port": 3000, "instances": "max"},
	},
	{
		ID:            "python_flask",
		Name:          "Python Flask + Nginx",
		Description:   "Python Flask application with Nginx and Gunicorn",
		Requirements:  []string{"Python3", "pip3", "Nginx", "Gunicorn"},
		SetupScript:   "python-flask-setup.sh",
		RestartScript: "python-flask-restart.sh",
		Config:        map[string]any{"port": 5000, "workers": 4},
	},
	{
		ID:            "static_nginx",
		Name:          "Static Site + Nginx",
		Description:   "HTML/CSS/JS served by Nginx",
		Requirements:  []string{"Nginx"},
		SetupScript:   "static-nginx-setup.sh",
		RestartScript: "static-nginx-restart.sh",
		Config:        map[string]any{"port": 80},
	},
}
