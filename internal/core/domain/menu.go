package domain

// MenuItem is one navigation entry of a role section. Items either link to a
// path, trigger an Action, or group SubItems.
type MenuItem struct {
	Title    string     `json:"title"`
	To       string     `json:"to,omitempty"`
	Action   string     `json:"action,omitempty"`
	SubItems []MenuItem `json:"sub_items,omitempty"`
}

const ActionSignout = "signout"

var signoutItem = MenuItem{Title: "Cerrar Sesión", Action: ActionSignout}

var menus = map[string][]MenuItem{
	RoleAdministrador: {
		{Title: "DASHBOARD", To: "/administrador/dashboard"},
		{Title: "Módulo Seguridad", SubItems: []MenuItem{
			signoutItem,
			{Title: "Gestión de Usuarios", To: "/administrador/usuarios"},
			{Title: "Roles", To: "/administrador/roles"},
		}},
		{Title: "Módulo Gestión Académica", SubItems: []MenuItem{
			{Title: "Gestión de Materias", To: "/administrador/materias"},
			{Title: "Gestión de Grupos", To: "/administrador/grupos"},
			{Title: "Gestión de Aulas", To: "/administrador/aulas"},
			{Title: "Períodos Académicos", To: "/administrador/gestiones"},
			{Title: "Gestion Docentes", To: "/administrador/docentes"},
			{Title: "Reporte Carga Horaria", To: "/administrador/reportes"},
		}},
	},
	RoleCoordinador: {
		{Title: "DASHBOARD", To: "/cordinador/dashboard"},
		{Title: "Mi Perfil", SubItems: []MenuItem{
			{Title: "Datos Personales", To: "/cordinador/perfil"},
			{Title: "Cambiar Contraseña", To: "/cordinador/cambiar-contra"},
			signoutItem,
		}},
		{Title: "Supervisión de Horarios", SubItems: []MenuItem{
			{Title: "Horarios de la Carrera", To: "/cordinador/horarios-carrera"},
			{Title: "Horarios por Docente", To: "/cordinador/horarios-docentes"},
			{Title: "Horarios por Grupo", To: "/cordinador/horarios-grupos"},
			{Title: "Ocupación de Aulas", To: "/cordinador/aulas-ocupacion"},
		}},
		{Title: "Gestión Académica", SubItems: []MenuItem{
			{Title: "Docentes de la Carrera", To: "/cordinador/docentes-carrera"},
			{Title: "Materias de la Carrera", To: "/cordinador/materias-carrera"},
			{Title: "Grupos de la Carrera", To: "/cordinador/grupos-carrera"},
			{Title: "Revisar Carga Horaria", To: "/cordinador/carga-horaria"},
		}},
	},
	RoleDocente: {
		{Title: "DASHBOARD", To: "/docente/dashboard"},
		{Title: "Seguridad", SubItems: []MenuItem{
			{Title: "Datos Personales", To: "/docente/perfil"},
			{Title: "Cambiar Contraseña", To: "/docente/cambiar-contra"},
			signoutItem,
		}},
		{Title: "Mi Carga Horaria", SubItems: []MenuItem{
			{Title: "Ver Mi Horario", To: "/docente/mi-horario"},
			{Title: "Mis Materias Asignadas", To: "/docente/mis-materias"},
			{Title: "Mis Grupos", To: "/docente/mis-grupos"},
			{Title: "Aulas Asignadas", To: "/docente/mis-aulas"},
		}},
	},
}

// MenuFor returns a copy of the navigation menu of role. Unknown roles get nil.
func MenuFor(role string) []MenuItem {
	return cloneMenu(menus[role])
}

func cloneMenu(items []MenuItem) []MenuItem {
	if items == nil {
		return nil
	}
	out := make([]MenuItem, len(items))
	for i, it := range items {
		out[i] = it
		out[i].SubItems = cloneMenu(it.SubItems)
	}
	return out
}
