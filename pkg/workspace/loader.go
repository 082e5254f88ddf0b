package workspace

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/swxiao/jenkins/pkg/model"
)

// Definition is the YAML shape of a workspace file.
type Definition struct {
	Jobs        []JobDef    `yaml:"jobs"`
	Folders     []FolderDef `yaml:"folders"`
	Views       []ViewDef   `yaml:"views"`
	PrimaryView string      `yaml:"primary_view"`
}

// JobDef declares one job.
type JobDef struct {
	Name        string `yaml:"name"`
	DisplayName string `yaml:"display_name"`
	Disabled    bool   `yaml:"disabled"`
}

// FolderDef declares one folder with nested jobs and folders.
type FolderDef struct {
	Name        string      `yaml:"name"`
	DisplayName string      `yaml:"display_name"`
	Jobs        []JobDef    `yaml:"jobs"`
	Folders     []FolderDef `yaml:"folders"`
}

// ViewDef declares one list view over top-level jobs.
type ViewDef struct {
	Name string   `yaml:"name"`
	Jobs []string `yaml:"jobs"`
}

// Load reads and builds a workspace from the YAML file at path.
func Load(path string) (*model.Workspace, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read workspace file: %w", err)
	}
	return Parse(data)
}

// Parse builds a workspace from YAML data. Duplicate names are legal and
// preserved in declaration order; validation rejects only structural
// problems (a nameless job or folder, a view over an unknown job).
func Parse(data []byte) (*model.Workspace, error) {
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("failed to parse workspace file: %w", err)
	}
	return Build(&def)
}

// Build materializes a Definition into a live object graph.
func Build(def *Definition) (*model.Workspace, error) {
	ws := model.NewWorkspace()
	jobsByName := make(map[string]*model.Job)

	for _, jd := range def.Jobs {
		if jd.Name == "" {
			return nil, fmt.Errorf("top-level job without a name")
		}
		j := ws.CreateJob(jd.Name)
		applyJobDef(j, jd)
		if _, dup := jobsByName[jd.Name]; !dup {
			jobsByName[jd.Name] = j
		}
	}

	for _, fd := range def.Folders {
		if fd.Name == "" {
			return nil, fmt.Errorf("top-level folder without a name")
		}
		f := ws.CreateFolder(fd.Name)
		if err := buildFolder(f, fd); err != nil {
			return nil, err
		}
	}

	for _, vd := range def.Views {
		if vd.Name == "" {
			return nil, fmt.Errorf("view without a name")
		}
		v := model.NewListView(vd.Name)
		for _, jobName := range vd.Jobs {
			j, ok := jobsByName[jobName]
			if !ok {
				return nil, fmt.Errorf("view %q references unknown job %q", vd.Name, jobName)
			}
			v.AddJob(j)
		}
		ws.AddView(v)
		if def.PrimaryView == vd.Name {
			ws.SetPrimaryView(v)
		}
	}

	return ws, nil
}

func buildFolder(f *model.Folder, fd FolderDef) error {
	if fd.DisplayName != "" {
		f.SetDisplayName(fd.DisplayName)
	}
	for _, jd := range fd.Jobs {
		if jd.Name == "" {
			return fmt.Errorf("job without a name in folder %q", fd.Name)
		}
		applyJobDef(f.CreateJob(jd.Name), jd)
	}
	for _, nested := range fd.Folders {
		if nested.Name == "" {
			return fmt.Errorf("folder without a name in folder %q", fd.Name)
		}
		if err := buildFolder(f.CreateFolder(nested.Name), nested); err != nil {
			return err
		}
	}
	return nil
}

func applyJobDef(j *model.Job, jd JobDef) {
	if jd.DisplayName != "" {
		j.SetDisplayName(jd.DisplayName)
	}
	if jd.Disabled {
		j.Disable()
	}
}
